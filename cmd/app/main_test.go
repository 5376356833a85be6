package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCommands(t *testing.T) {
	cmds := getCommands("test")

	categories := map[string]string{}
	for _, c := range cmds {
		categories[c.Name] = c.Category
	}

	assert.Equal(t, map[string]string{
		"server":            "system",
		"migrate":           "system",
		"clean-audit-logs":  "system",
		"create-master-key": "keys",
		"issue-token":       "auth",
	}, categories)
}
