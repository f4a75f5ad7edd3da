package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginMasksPassword(t *testing.T) {
	expectedMap := map[string]string{"email": "owner@example.com", "password": "***"}
	expected, _ := json.Marshal(expectedMap)
	loginReq := Login{Email: "owner@example.com", Password: "hunter22"}

	actual, _ := json.Marshal(loginReq)

	assert.EqualValues(t, expected, actual)
	assert.EqualValues(t, "hunter22", loginReq.Password)
}

func TestRegisterMasksPassword(t *testing.T) {
	expectedMap := map[string]string{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "***",
	}
	expected, _ := json.Marshal(expectedMap)
	registerReq := Register{Name: "Ana", Email: "ana@example.com", Password: "hunter22"}

	actual, _ := json.Marshal(registerReq)

	assert.JSONEq(t, string(expected), string(actual))
	assert.EqualValues(t, "hunter22", registerReq.Password)
}
