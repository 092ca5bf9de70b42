package table

import "testing"

// TestValueTypeProjection verifies that every value kind projects to its
// schema type, and that null projects to text.
func TestValueTypeProjection(t *testing.T) {
	cases := []struct {
		val  Value
		want DataType
	}{
		{Value{Kind: KindInt32, I32: 1}, TypeInt32},
		{Value{Kind: KindInt64, I64: 1}, TypeInt64},
		{Value{Kind: KindFloat32, F32: 1.5}, TypeFloat32},
		{Value{Kind: KindFloat64, F64: 1.5}, TypeFloat64},
		{Value{Kind: KindText, S: "x"}, TypeText},
		// Null values satisfy text columns and nothing else.
		{Value{Kind: KindNull}, TypeText},
	}

	for _, c := range cases {
		if got := c.val.Type(); got != c.want {
			t.Fatalf("%s: expected type %s, got %s", c.val, c.want, got)
		}
	}
}

func TestValueEqual(t *testing.T) {
	if !(Value{Kind: KindText, S: "x"}).Equal(Value{Kind: KindText, S: "x"}) {
		t.Fatalf("identical text values should be equal")
	}
	if (Value{Kind: KindText, S: "x"}).Equal(Value{Kind: KindText, S: "y"}) {
		t.Fatalf("different text payloads should not be equal")
	}
	if !(Value{Kind: KindNull}).Equal(Value{Kind: KindNull}) {
		t.Fatalf("null should equal null")
	}

	// Same numeric payload under a different kind is not equal.
	if (Value{Kind: KindInt32, I32: 5}).Equal(Value{Kind: KindInt64, I64: 5}) {
		t.Fatalf("int32 5 should not equal int64 5")
	}
}

func TestParseDataTypeRoundTrip(t *testing.T) {
	for _, dt := range []DataType{TypeInt32, TypeInt64, TypeFloat32, TypeFloat64, TypeText} {
		got, err := ParseDataType(dt.String())
		if err != nil {
			t.Fatalf("ParseDataType(%q) failed: %v", dt.String(), err)
		}
		if got != dt {
			t.Fatalf("ParseDataType(%q) = %s, expected %s", dt.String(), got, dt)
		}
	}

	if _, err := ParseDataType("bool"); err == nil {
		t.Fatalf("expected error for unknown type name")
	}
}

func TestColumnAccessors(t *testing.T) {
	c := NewColumn("age", TypeInt32)
	if c.Name() != "age" {
		t.Fatalf("expected name %q, got %q", "age", c.Name())
	}
	if c.Restriction() != TypeInt32 {
		t.Fatalf("expected restriction int32, got %s", c.Restriction())
	}
}
