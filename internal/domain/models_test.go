package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestJobOffer_RoundTripVerbatim(t *testing.T) {
	in := `[{"id":"1","title":"Coach","salary":95000,"extra":{"remote":true}},{"id":"2"}]`

	var offers []JobOffer
	if err := json.Unmarshal([]byte(in), &offers); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(offers))
	}

	out, err := json.Marshal(SearchResponse{Jobs: offers})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"jobs":` + in + `}`
	if string(out) != want {
		t.Fatalf("offers were altered:\n got %s\nwant %s", out, want)
	}
}

func TestJobOffer_RejectsNonObjects(t *testing.T) {
	for _, in := range []string{`["a"]`, `[1]`, `[[]]`, `[null]`} {
		var offers []JobOffer
		err := json.Unmarshal([]byte(in), &offers)
		if !errors.Is(err, ErrNotObject) {
			t.Fatalf("Unmarshal(%s) err = %v; want ErrNotObject", in, err)
		}
	}
}

func TestJobOffer_EmptyMarshalsNull(t *testing.T) {
	b, err := json.Marshal(JobOffer(nil))
	if err != nil || string(b) != "null" {
		t.Fatalf("got %s, %v", b, err)
	}
}

func TestSuggestionsRequest_RIASECCode(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"present", `{"testResults":{"riasec":{"result":{"code":"SAE"}}}}`, "SAE"},
		{"trimmed", `{"testResults":{"riasec":{"result":{"code":"  IAS "}}}}`, "IAS"},
		{"no testResults", `{}`, UnknownRIASECCode},
		{"no riasec", `{"testResults":{"enneagram":{"type":4}}}`, UnknownRIASECCode},
		{"no result", `{"testResults":{"riasec":{}}}`, UnknownRIASECCode},
		{"blank code", `{"testResults":{"riasec":{"result":{"code":""}}}}`, UnknownRIASECCode},
		{"numeric code", `{"testResults":{"riasec":{"result":{"code":42}}}}`, UnknownRIASECCode},
		{"riasec is a string", `{"testResults":{"riasec":"RIA"}}`, UnknownRIASECCode},
		{"null testResults", `{"testResults":null}`, UnknownRIASECCode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req SuggestionsRequest
			if err := json.Unmarshal([]byte(tc.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := req.RIASECCode(); got != tc.want {
				t.Fatalf("RIASECCode() = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestAnalysisResult_AbsentScoreIsNull(t *testing.T) {
	b, _ := json.Marshal(AnalysisResult{Summary: "s", Insights: "i", Pros: []string{}, Cons: []string{}})
	if string(b) != `{"summary":"s","insights":"i","pros":[],"cons":[],"matchScore":null}` {
		t.Fatalf("unexpected JSON: %s", b)
	}
	score := 85.0
	b, _ = json.Marshal(AnalysisResult{Summary: "s", MatchScore: &score})
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	if m["matchScore"] != 85.0 {
		t.Fatalf("matchScore missing: %s", b)
	}
}
