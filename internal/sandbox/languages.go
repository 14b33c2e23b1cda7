// internal/sandbox/languages.go
package sandbox

// LanguageBinary runs a prebuilt executable given by Submission.Binary.
const LanguageBinary = "bin"

// ConfigureDefaultLanguages adds default language configurations to the given config.
// Time and memory limits are left at zero so the Config defaults apply.
func ConfigureDefaultLanguages(cfg *Config) {
	cfg.Languages[LanguageBinary] = LanguageConfig{
		Run: RunConfig{Command: PlaceholderExePath},
	}

	// Go
	cfg.Languages["go"] = LanguageConfig{
		Compile: CompileConfig{
			SrcName:        "main.go",
			ExeName:        "main",
			CompileCommand: "go build -ldflags \"-s -w\" -o {{EXE_PATH}} {{SRC_PATH}}",
		},
		Run: RunConfig{Command: "{{EXE_PATH}}"},
	}

	// C++
	cfg.Languages["cpp"] = LanguageConfig{
		Compile: CompileConfig{
			SrcName:        "main.cpp",
			ExeName:        "main",
			CompileCommand: "g++ -Wall -O2 -std=c++17 {{SRC_PATH}} -o {{EXE_PATH}}",
		},
		Run: RunConfig{Command: "{{EXE_PATH}}"},
	}

	// Rust
	cfg.Languages["rust"] = LanguageConfig{
		Compile: CompileConfig{
			SrcName:        "main.rs",
			ExeName:        "main",
			CompileCommand: "rustc -O -o {{EXE_PATH}} {{SRC_PATH}}",
		},
		Run: RunConfig{Command: "{{EXE_PATH}}"},
	}

	// Python 3
	cfg.Languages["python"] = LanguageConfig{
		Compile: CompileConfig{SrcName: "main.py"},
		Run:     RunConfig{Command: "python3 {{SRC_PATH}}"},
	}

	// Java
	cfg.Languages["java"] = LanguageConfig{
		Compile: CompileConfig{
			SrcName:        "Main.java",
			ExeName:        "Main.class",
			CompileCommand: "javac {{SRC_PATH}}",
		},
		Run: RunConfig{Command: "java -Xmx{{MAX_MEM}}k -cp {{EXE_DIR}} Main"},
	}

	// JavaScript (Node.js)
	cfg.Languages["javascript"] = LanguageConfig{
		Compile: CompileConfig{SrcName: "main.js"},
		Run:     RunConfig{Command: "node {{SRC_PATH}}"},
	}
}
