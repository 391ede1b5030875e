package views

import "testing"

func TestMongoFormRejectsBadURI(t *testing.T) {
	m := NewNoSQLSetupModel(80, 24)
	m.inputs[0].SetValue("mysql://localhost:3306")
	m.inputs[1].SetValue("shop")
	m.inputs[2].SetValue("orders")

	m, cmd := m.submit()
	if cmd != nil {
		t.Fatal("bad URI scheme must not submit")
	}
	if m.errText == "" {
		t.Error("expected a URI hint")
	}
}

func TestMongoFormRejectsBadSampleDocument(t *testing.T) {
	m := NewNoSQLSetupModel(80, 24)
	m.inputs[0].SetValue("mongodb://localhost:27017")
	m.inputs[1].SetValue("shop")
	m.inputs[2].SetValue("orders")
	m.sample.SetValue(`[1, 2, 3]`)

	m, cmd := m.submit()
	if cmd != nil {
		t.Fatal("non-object sample must not submit")
	}
	if m.errText == "" {
		t.Error("expected a sample-document hint")
	}
}

func TestMongoFormSubmitsValidInput(t *testing.T) {
	m := NewNoSQLSetupModel(80, 24)
	m.inputs[0].SetValue("mongodb+srv://cluster.example.net")
	m.inputs[1].SetValue(" shop ")
	m.inputs[2].SetValue("orders")
	m.sample.SetValue(`{"total": 10}`)

	if hint := m.validate(); hint != "" {
		t.Fatalf("validate() = %q, want empty", hint)
	}

	m, cmd := m.submit()
	if cmd == nil {
		t.Fatal("valid form should submit")
	}
	sub, ok := cmd().(SubmitMongoMsg)
	if !ok {
		t.Fatalf("got %T, want SubmitMongoMsg", cmd())
	}
	if sub.Conn.DatabaseName != "shop" {
		t.Errorf("database = %q, want trimmed shop", sub.Conn.DatabaseName)
	}
	if sub.Conn.SampleDocument["total"] != float64(10) {
		t.Errorf("sample document = %v, want parsed object", sub.Conn.SampleDocument)
	}
}

func TestMongoFormEmptySampleIsOptional(t *testing.T) {
	m := NewNoSQLSetupModel(80, 24)
	m.inputs[0].SetValue("mongodb://localhost:27017")
	m.inputs[1].SetValue("shop")
	m.inputs[2].SetValue("orders")

	m, cmd := m.submit()
	if cmd == nil {
		t.Fatal("empty sample should still submit")
	}
	sub := cmd().(SubmitMongoMsg)
	if sub.Conn.SampleDocument != nil {
		t.Errorf("sample document = %v, want nil", sub.Conn.SampleDocument)
	}
}
