package main

import "testing"

func TestCheckMCPSink(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		query   string
		path    string
		wantErr bool
	}{
		{"no sink", "", "", "", false},
		{"output only", "saves.jsonl", "", "", false},
		{"filter with output", "saves.jsonl", ".[1:]", "", false},
		{"jq without output", "", ".[1:]", "", true},
		{"jsonpath without output", "", "", "$[1]", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkMCPSink(tt.output, tt.query, tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkMCPSink() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewFilter(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		path    string
		wantNil bool
		wantErr bool
	}{
		{"none", "", "", true, false},
		{"jq", ".[0]", "", false, false},
		{"jsonpath", "", "$[0]", false, false},
		{"both", ".[0]", "$[0]", true, true},
		{"invalid jq", ".[", "", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := newFilter(tt.query, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newFilter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if (f == nil) != tt.wantNil {
				t.Errorf("newFilter() filter nil = %v, want %v", f == nil, tt.wantNil)
			}
		})
	}
}
