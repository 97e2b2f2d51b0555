package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulesPrefix = "diagnocare/internal/modules/"

var layers = []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"}

// walkImports calls check for every internal import of every non-test file
// under root.
func walkImports(t *testing.T, root string, check func(file, importPath string) bool) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		file := filepath.ToSlash(path)
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !strings.HasPrefix(importPath, "diagnocare/internal/") {
				continue
			}
			if !check(file, importPath) {
				t.Errorf("forbidden import in %s: %s", file, importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "modules"), func(file, importPath string) bool {
		module, layer := moduleName(file), detectLayer(file)
		if module == "" || layer == "" || !strings.HasPrefix(importPath, modulesPrefix) {
			return true
		}
		return !violatesLayerRule(module, layer, importPath)
	})
}

// Views talk to modules only through inbound ports and DTOs.
func TestUIUsesInboundPortsOnly(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "ui"), func(_, importPath string) bool {
		if !strings.HasPrefix(importPath, modulesPrefix) {
			return !strings.Contains(importPath, "/devserver") && !strings.Contains(importPath, "/bootstrap")
		}
		return isPortIn(importPath) || isDTO(importPath)
	})
}

func TestPlatformIsLeaf(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "platform"), func(_, importPath string) bool {
		return strings.HasPrefix(importPath, "diagnocare/internal/platform/")
	})
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i+1 < len(parts)-1; i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range layers {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

func violatesLayerRule(module, layer, importPath string) bool {
	reaches := func(kinds ...string) bool {
		for _, k := range kinds {
			if strings.Contains(importPath+"/", "/"+k+"/") {
				return true
			}
		}
		return false
	}
	if !strings.HasPrefix(importPath, modulesPrefix+module+"/") {
		if reaches("service", "adapter", "usecase") {
			return true
		}
		if isPortIn(importPath) || isDTO(importPath) {
			return false
		}
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return reaches("adapter")
	case "service":
		return reaches("adapter", "usecase")
	case "domain":
		return reaches("adapter", "usecase", "service")
	default:
		return false
	}
}
