package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type datedInput struct {
	Date string `validate:"required,calendar_date"`
	Time string `validate:"required,clock_time"`
}

func TestCustomRulesRegistered(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateStruct(&datedInput{Date: "2024-06-01", Time: "10:00"}))
	assert.Error(t, ValidateStruct(&datedInput{Date: "01/06/2024", Time: "10:00"}))
	assert.Error(t, ValidateStruct(&datedInput{Date: "2024-13-01", Time: "10:00"}))
	assert.Error(t, ValidateStruct(&datedInput{Date: "2024-06-01", Time: "25:00"}))
	assert.Error(t, ValidateStruct(&datedInput{Date: "2024-06-01", Time: "10:00:00"}))
}
