package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShebangInterpreter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		want    string
	}{
		{"#!/bin/sh\n", "sh"},
		{"#!/usr/bin/env brace\r\nx;", "brace"},
		{"#!/usr/bin/env -S brace -x\n", "brace"},
		{"#! /opt/tools/bc", "bc"},
		{"#!/usr/bin/env\n", ""},
		{"#!\n", ""},
		{"x; #!/bin/sh\n", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, shebangInterpreter([]byte(tt.content)), tt.content)
	}
}
