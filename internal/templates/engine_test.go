package templates

import (
	"errors"
	"strings"
	"testing"
)

func newBuiltinEngine(t *testing.T) *Engine {
	t.Helper()
	lib, err := Builtins()
	if err != nil {
		t.Fatalf("Builtins: %v", err)
	}
	return NewEngine(lib)
}

func TestSelectUnknownKey(t *testing.T) {
	e := newBuiltinEngine(t)
	err := e.Select("tonsillectomy")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, ok := e.Selected(); ok {
		t.Error("failed select should leave nothing selected")
	}
}

func TestSelectInitialisesEmptyBindings(t *testing.T) {
	e := newBuiltinEngine(t)
	if err := e.Select("appendectomy"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	b := e.Bindings()
	if len(b) != 6 {
		t.Fatalf("bindings = %d, want 6", len(b))
	}
	for name, v := range b {
		if v != "" {
			t.Errorf("binding %s = %q, want empty", name, v)
		}
	}
}

func TestSelectDiscardsPriorBindings(t *testing.T) {
	e := newBuiltinEngine(t)
	e.Select("appendectomy")
	e.Bind("duration", "45")

	e.Select("cholecystectomy")
	e.Select("appendectomy")
	if got := e.Binding("duration"); got != "" {
		t.Errorf("duration = %q, want reset", got)
	}
}

func TestBindRequiresSelection(t *testing.T) {
	e := newBuiltinEngine(t)
	if err := e.Bind("duration", "45"); !errors.Is(err, ErrNoSelection) {
		t.Errorf("err = %v, want ErrNoSelection", err)
	}
	if _, err := e.Apply(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Apply err = %v, want ErrNoSelection", err)
	}
}

func TestApplyAppendectomyPartialBindings(t *testing.T) {
	e := newBuiltinEngine(t)
	e.Select("appendectomy")
	e.Bind("duration", "45")

	got, err := e.Apply()
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !strings.Contains(got, "duration: 45 minutes") {
		t.Errorf("missing bound duration: %q", got)
	}
	for _, v := range []string{"surgeon", "anesthesia", "port_count", "findings", "blood_loss"} {
		if !strings.Contains(got, "["+v+" not provided]") {
			t.Errorf("missing placeholder for %s: %q", v, got)
		}
	}
}

func TestApplyEmptyBindingUsesPlaceholder(t *testing.T) {
	e := newBuiltinEngine(t)
	e.Select("appendectomy")
	e.Bind("surgeon", "")

	got, _ := e.Apply()
	if !strings.Contains(got, "[surgeon not provided]") {
		t.Errorf("empty binding not replaced: %q", got)
	}
}

func TestCreateExtractsVariables(t *testing.T) {
	e := newBuiltinEngine(t)
	tmpl, err := e.Create("Drain Removal", "Drain removed on day {{day}}, output {{output}} ml, {{day}}.")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tmpl.Key != "drain_removal" {
		t.Errorf("key = %q", tmpl.Key)
	}
	if len(tmpl.Variables) != 2 || tmpl.Variables[0] != "day" || tmpl.Variables[1] != "output" {
		t.Errorf("variables = %q", tmpl.Variables)
	}

	if err := e.Select("drain_removal"); err != nil {
		t.Fatalf("Select created: %v", err)
	}
	e.Bind("day", "3")
	e.Bind("output", "20")
	got, _ := e.Apply()
	if got != "Drain removed on day 3, output 20 ml, 3." {
		t.Errorf("Apply = %q", got)
	}
}

func TestCreateCollisionReported(t *testing.T) {
	e := newBuiltinEngine(t)
	_, err := e.Create("Appendectomy", "mine")
	if !errors.Is(err, ErrExists) {
		t.Fatalf("err = %v, want ErrExists", err)
	}
	tmpl, _ := e.Library().Get("appendectomy")
	if tmpl.Content == "mine" {
		t.Error("collision must not overwrite")
	}
}

func TestReplaceOverwrites(t *testing.T) {
	e := newBuiltinEngine(t)
	e.Select("appendectomy")

	tmpl, err := e.Replace("Appendectomy", "Open approach, {{incision}}.")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if tmpl.Source != SourceUser {
		t.Errorf("source = %q", tmpl.Source)
	}
	if _, ok := e.Selected(); ok {
		t.Error("replacing the selected template should clear the stale selection")
	}
	got, _ := e.Library().Get("appendectomy")
	if got.Content != "Open approach, {{incision}}." {
		t.Errorf("content = %q", got.Content)
	}
}

func TestCreateEmptyName(t *testing.T) {
	e := newBuiltinEngine(t)
	if _, err := e.Create("   ", "x"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("err = %v, want ErrEmptyName", err)
	}
	if _, err := e.Replace("", "x"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Replace err = %v, want ErrEmptyName", err)
	}
}

func TestApplyNameWithSpace(t *testing.T) {
	e := NewEngine(NewLibrary())
	if _, err := e.Create("Consult", "Patient: {{patient name}}, age {{age}}"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := e.Select("consult"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	e.Bind("patient name", "J. Doe")
	e.Bind("age", "40")

	got, err := e.Apply()
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != "Patient: J. Doe, age 40" {
		t.Errorf("Apply = %q", got)
	}
}
