package chainfake

import (
	"encoding/json"
	"strings"
)

type abiParam struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type abiEntry struct {
	Type            string     `json:"type"`
	Name            string     `json:"name,omitempty"`
	Inputs          []abiParam `json:"inputs"`
	Outputs         []abiParam `json:"outputs,omitempty"`
	StateMutability string     `json:"stateMutability"`
}

// params parses "address owner" style declarations
func params(decls ...string) []abiParam {
	out := make([]abiParam, 0, len(decls))
	for _, d := range decls {
		typ, name, _ := strings.Cut(strings.TrimSpace(d), " ")
		out = append(out, abiParam{Name: name, Type: typ})
	}
	return out
}

func constructor(inputs ...string) abiEntry {
	return abiEntry{Type: "constructor", Inputs: params(inputs...), StateMutability: "nonpayable"}
}

func view(name string, inputs []string, output string) abiEntry {
	return abiEntry{
		Type:            "function",
		Name:            name,
		Inputs:          params(inputs...),
		Outputs:         params(output),
		StateMutability: "view",
	}
}

func write(name string, inputs ...string) abiEntry {
	return abiEntry{Type: "function", Name: name, Inputs: params(inputs...), StateMutability: "nonpayable"}
}

func abiJSON(entries ...abiEntry) json.RawMessage {
	raw, err := json.Marshal(entries)
	if err != nil {
		panic(err)
	}
	return raw
}
