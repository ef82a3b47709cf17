//go:build !tinygo

package main

import (
	"go/ast"
	"go/doc"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every exported function, type and method of the panel packages carries a
// doc comment.
func TestExportedAPIDocumented(t *testing.T) {
	dirs := []string{
		"app",
		"home/dispatch",
		"home/link",
		"home/menu",
		"home/surface",
		"kernel",
	}
	for _, dir := range dirs {
		t.Run(dir, func(t *testing.T) {
			pkg := loadDoc(t, dir)
			var missing []string
			check := func(name, text string) {
				if strings.TrimSpace(text) == "" {
					missing = append(missing, name)
				}
			}
			for _, f := range pkg.Funcs {
				check(f.Name, f.Doc)
			}
			for _, typ := range pkg.Types {
				check(typ.Name, typ.Doc)
				for _, f := range typ.Funcs {
					check(f.Name, f.Doc)
				}
				for _, m := range typ.Methods {
					check(typ.Name+"."+m.Name, m.Doc)
				}
			}
			assert.Empty(t, missing)
		})
	}
}

func loadDoc(t *testing.T, dir string) *doc.Package {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	fset := token.NewFileSet()
	var files []*ast.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments)
		require.NoError(t, err)
		files = append(files, f)
	}
	require.NotEmpty(t, files)

	pkg, err := doc.NewFromFiles(fset, files, "fortuna/"+dir)
	require.NoError(t, err)
	return pkg
}
