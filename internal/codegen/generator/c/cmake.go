package cgen

const cmakeTmpl = `# {{.Meta.DeviceName}} firmware, scaffolded by yambusc {{.Version}}
cmake_minimum_required(VERSION 3.10)
project({{.Stem}} C)

set(CMAKE_C_STANDARD 99)

# Library source files
add_library({{.Stem}} STATIC
    src/{{.Stem}}.c
{{range tables}}    src/{{.Name}}.c
{{end}})

# Include directories
target_include_directories({{.Stem}} PUBLIC
    ${CMAKE_CURRENT_SOURCE_DIR}/inc
)

# Unit tests
if(EXISTS ${CMAKE_CURRENT_SOURCE_DIR}/test/CMakeLists.txt)
    enable_testing()
    add_subdirectory(test)
endif()
`

// RenderCMake renders the build descriptor of the project.
func RenderCMake(p Project) ([]byte, error) {
	return execute(cmakeFile, cmakeTmpl, p, p)
}
