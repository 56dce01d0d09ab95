//go:build !headless

package main

import (
	"j4k.co/debugdraw"
)

// Default tube program; shaders.vertex/shaders.fragment in the config replace
// it and are reloaded on change when shaders.watch is set.
var tubeVS debugdraw.VertexShader = `#version 410 core
uniform mat4 ViewProjection;
uniform float Time;

in vec3 Position;
in vec3 Normal;

out vec3 normal;
out float band;

void main() {
	normal = Normal;
	band = Position.y - Time;
	gl_Position = ViewProjection * vec4(Position, 1.0);
}
`

var tubeFS debugdraw.FragmentShader = `#version 410 core
uniform vec3 TubeColor;

in vec3 normal;
in float band;

out vec4 FragColor;

void main() {
	vec3 light = normalize(vec3(-0.3, 1.0, 0.5));
	float diffuse = max(dot(normalize(normal), light), 0.0);
	float stripe = 0.85 + 0.15 * step(0.5, fract(band));
	FragColor = vec4(TubeColor * (0.25 + 0.75 * diffuse) * stripe, 1.0);
}
`

var skyVS debugdraw.VertexShader = `#version 410 core
uniform mat4 ViewProjection;

in vec3 Position;

out vec3 dir;

void main() {
	dir = Position;
	gl_Position = (ViewProjection * vec4(Position, 0.0)).xyww;
}
`

var skyFS debugdraw.FragmentShader = `#version 410 core
uniform samplerCube Sky;

in vec3 dir;

out vec4 FragColor;

void main() {
	FragColor = texture(Sky, dir);
}
`
