package gldraw

import (
	"j4k.co/debugdraw"
)

// Built-in programs. Attribute names follow debugdraw.DefaultVertexAttributes.

var colorVS debugdraw.VertexShader = `#version 410 core
uniform mat4 ViewProjection;

in vec3 Position;
in vec4 Color;

out vec4 color;

void main() {
	color = Color;
	gl_Position = ViewProjection * vec4(Position, 1.0);
}
`

var colorFS debugdraw.FragmentShader = `#version 410 core
in vec4 color;

out vec4 FragColor;

void main() {
	FragColor = color;
}
`

var textVS debugdraw.VertexShader = `#version 410 core
in vec3 Position;
in vec2 UV;

out vec2 uv;

void main() {
	uv = UV;
	gl_Position = vec4(Position.xy, 0.0, 1.0);
}
`

var textFS debugdraw.FragmentShader = `#version 410 core
uniform sampler2D Glyphs;
uniform vec4 TextColor;

in vec2 uv;

out vec4 FragColor;

void main() {
	FragColor = vec4(TextColor.rgb, TextColor.a * texture(Glyphs, uv).r);
}
`

var meshVS debugdraw.VertexShader = `#version 410 core
uniform mat4 ViewProjection;

in vec3 Position;
in vec3 Normal;

out vec3 normal;

void main() {
	normal = Normal;
	gl_Position = ViewProjection * vec4(Position, 1.0);
}
`

var meshFS debugdraw.FragmentShader = `#version 410 core
uniform vec3 MeshColor;

in vec3 normal;

out vec4 FragColor;

void main() {
	vec3 light = normalize(vec3(-0.3, 1.0, 0.5));
	float diffuse = max(dot(normalize(normal), light), 0.0);
	FragColor = vec4(MeshColor * (0.25 + 0.75 * diffuse), 1.0);
}
`
