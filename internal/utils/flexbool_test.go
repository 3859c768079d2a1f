package utils

import (
	"encoding/json"
	"testing"
)

func TestFlexBoolUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{`true`, true},
		{`"true"`, true},
		{`1`, true},
		{`"1"`, true},
		{`false`, false},
		{`"false"`, false},
		{`0`, false},
		{`"0"`, false},
		{`null`, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var f FlexBool
			if err := json.Unmarshal([]byte(tc.in), &f); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if f.Bool() != tc.want {
				t.Fatalf("unmarshal %s = %v, want %v", tc.in, f.Bool(), tc.want)
			}
		})
	}
}

func TestFlexBoolRejectsGarbage(t *testing.T) {
	for _, in := range []string{`"yes"`, `"TRUE"`, `2`, `"on"`, `{}`, `[]`} {
		var f FlexBool
		if err := json.Unmarshal([]byte(in), &f); err == nil {
			t.Errorf("unmarshal %s should fail", in)
		}
	}
}

func TestFlexBoolMarshalsPlainBool(t *testing.T) {
	var f FlexBool
	if err := json.Unmarshal([]byte(`"1"`), &f); err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "true" {
		t.Fatalf("marshal = %s, want true", out)
	}

	type payload struct {
		IsPlenary FlexBool `json:"isPlenary"`
	}
	out, err = json.Marshal(payload{IsPlenary: false})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"isPlenary":false}` {
		t.Fatalf("marshal = %s", out)
	}
}
