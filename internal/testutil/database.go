package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/syslogng-lsp/internal/schema"
)

// DatabaseJSON is a small grammar database covering one driver per common
// kind, with aliases, quoted hints and an inner block.
const DatabaseJSON = `{
  "source": {
    "network": {
      "options": [
        ["ip/localip", ["<string>"]],
        ["port/localport", ["<positive-integer>"]],
        ["transport", ["\"tcp\"", "\"udp\""]],
        ["keep-alive", ["<yesno>"]],
        ["tls", ["<tls-options>"]]
      ],
      "blocks": {
        "tls": {
          "options": [
            ["key-file", ["<path>"]],
            ["peer-verify/verify", ["\"required-trusted\"", "\"optional-untrusted\""]]
          ]
        }
      }
    },
    "file": {
      "options": [
        ["follow-freq", ["<nonnegative-integer>"]],
        ["flags", ["<identifier>"]]
      ]
    }
  },
  "destination": {
    "file": {
      "options": [
        ["create-dirs", ["<yesno>"]],
        ["template", ["<template-content>"]]
      ]
    }
  },
  "filter": {
    "level/priority": {
      "options": []
    }
  },
  "parser": {
    "csv-parser": {
      "options": [
        ["columns", ["<string-list>"]],
        ["delimiters", ["<string>"]]
      ]
    }
  }
}`

// Database builds the grammar database described by DatabaseJSON.
func Database(t *testing.T) *schema.Database {
	t.Helper()
	db, err := schema.Load([]byte(DatabaseJSON))
	require.NoError(t, err)
	return db
}
