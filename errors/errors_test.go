package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

// TestErrorCodesAreUnique parses the package's source files, finds all vars
// initialized with an Error{...} composite literal and fails if two of them
// share the same Code.
func TestErrorCodesAreUnique(t *testing.T) {
	c := qt.New(t)
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, ".", func(info fs.FileInfo) bool {
		name := info.Name()
		return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
	}, 0)
	c.Assert(err, qt.IsNil)
	pkg, ok := pkgs["errors"]
	c.Assert(ok, qt.IsTrue)

	byCode := map[int][]string{}
	for _, f := range pkg.Files {
		ast.Inspect(f, func(n ast.Node) bool {
			gd, ok := n.(*ast.GenDecl)
			if !ok || gd.Tok != token.VAR {
				return true
			}
			for _, spec := range gd.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				for i, name := range vs.Names {
					if i >= len(vs.Values) {
						continue
					}
					cl, ok := vs.Values[i].(*ast.CompositeLit)
					if !ok {
						continue
					}
					if id, ok := cl.Type.(*ast.Ident); !ok || id.Name != "Error" {
						continue
					}
					if code, ok := codeField(cl); ok {
						byCode[code] = append(byCode[code], name.Name+"@"+fset.Position(name.Pos()).String())
					}
				}
			}
			return true
		})
	}
	c.Assert(len(byCode) > 0, qt.IsTrue)
	for code, refs := range byCode {
		c.Assert(refs, qt.HasLen, 1, qt.Commentf("duplicated code %d", code))
	}
}

// codeField looks for a "Code: <int>" entry in the composite literal.
func codeField(cl *ast.CompositeLit) (int, bool) {
	for _, elt := range cl.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		if key, ok := kv.Key.(*ast.Ident); !ok || key.Name != "Code" {
			continue
		}
		if v, ok := kv.Value.(*ast.BasicLit); ok && v.Kind == token.INT {
			n, err := strconv.ParseInt(strings.ReplaceAll(v.Value, "_", ""), 0, 32)
			if err == nil {
				return int(n), true
			}
		}
	}
	return 0, false
}

func TestErrorWrite(t *testing.T) {
	c := qt.New(t)

	cause := fmt.Errorf("connection reset by peer")
	w := httptest.NewRecorder()
	ErrCoffeeFetchFailed.WithCause(cause).Write(w)
	c.Assert(w.Code, qt.Equals, http.StatusInternalServerError)
	c.Assert(w.Header().Get("Content-Type"), qt.Equals, "application/json")

	body := struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}{}
	c.Assert(json.Unmarshal(w.Body.Bytes(), &body), qt.IsNil)
	c.Assert(body.Error, qt.Equals, "failed to fetch coffee")
	c.Assert(body.Code, qt.Equals, 50102)
	// the cause never reaches the client
	c.Assert(strings.Contains(w.Body.String(), "connection reset"), qt.IsFalse)
}

func TestErrorWith(t *testing.T) {
	c := qt.New(t)

	err := ErrMalformedBody.With("expected an object")
	c.Assert(err.Error(), qt.Equals, "invalid JSON request body: expected an object")
	c.Assert(err.Code, qt.Equals, ErrMalformedBody.Code)
	c.Assert(err.HTTPstatus, qt.Equals, http.StatusBadRequest)
	// the definition is not modified
	c.Assert(ErrMalformedBody.Error(), qt.Equals, "invalid JSON request body")

	err = ErrMalformedURLParam.Withf("id %q", "xyz")
	c.Assert(err.Error(), qt.Equals, `invalid URL parameter: id "xyz"`)

	cause := fmt.Errorf("boom")
	err = ErrStorageInvalidObject.WithErr(cause)
	c.Assert(err.Error(), qt.Equals, "invalid storage object or parameters: boom")
	c.Assert(stderrors.Is(err, cause), qt.IsTrue)

	err = ErrUserDeleteFailed.WithCause(cause)
	c.Assert(err.Error(), qt.Equals, "failed to delete user")
	c.Assert(stderrors.Is(err, cause), qt.IsTrue)
}

func TestErrorMarshalJSON(t *testing.T) {
	c := qt.New(t)
	data, err := json.Marshal(ErrEmptyUpdate)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, `{"error":"update contains none of the known fields","code":40038}`)
}
