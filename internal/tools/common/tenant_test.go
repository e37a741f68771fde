package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTenantFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"explicit tenant", map[string]interface{}{"customerId": "t1"}, "t1"},
		{"empty tenant", map[string]interface{}{"customerId": ""}, "default"},
		{"missing tenant", map[string]interface{}{}, "default"},
		{"nil args", nil, "default"},
		{"wrong type", map[string]interface{}{"customerId": 42}, "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetTenantFromArgs(tc.args))
		})
	}
}
