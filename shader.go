package debugdraw

// ShaderStage identifies the pipeline stage a ShaderSource compiles for.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
	StageGeometry
	StageTessControl
	StageTessEval
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	case StageTessControl:
		return "tess control"
	case StageTessEval:
		return "tess evaluation"
	default:
		return "unknown"
	}
}

type ShaderSource interface {
	Stage() ShaderStage
	Source() string
}

type (
	VertexShader      string
	FragmentShader    string
	GeometryShader    string
	TessControlShader string
	TessEvalShader    string
)

func (v VertexShader) Stage() ShaderStage      { return StageVertex }
func (f FragmentShader) Stage() ShaderStage    { return StageFragment }
func (g GeometryShader) Stage() ShaderStage    { return StageGeometry }
func (c TessControlShader) Stage() ShaderStage { return StageTessControl }
func (e TessEvalShader) Stage() ShaderStage    { return StageTessEval }

func (v VertexShader) Source() string      { return string(v) }
func (f FragmentShader) Source() string    { return string(f) }
func (g GeometryShader) Source() string    { return string(g) }
func (c TessControlShader) Source() string { return string(c) }
func (e TessEvalShader) Source() string    { return string(e) }

// CheckStages reports whether srcs form a program a Device can link: a vertex
// and fragment stage, at most one of each stage, and tessellation stages only
// in pairs.
func CheckStages(srcs ...ShaderSource) error {
	var seen [StageTessEval + 1]int
	for _, s := range srcs {
		if s == nil {
			continue
		}
		st := s.Stage()
		if st > StageTessEval {
			return ErrBadStages
		}
		seen[st]++
		if seen[st] > 1 {
			return ErrBadStages
		}
	}
	if seen[StageVertex] == 0 || seen[StageFragment] == 0 {
		return ErrBadStages
	}
	if seen[StageTessControl] != seen[StageTessEval] {
		return ErrBadStages
	}
	return nil
}
