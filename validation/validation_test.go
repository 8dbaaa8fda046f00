package validation

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fragmentRequest struct {
	Fragment string `json:"fragment" validate:"valid_fragment,max=100"`
}

type nameRequest struct {
	Name string `json:"name" validate:"valid_name"`
}

type boxRequest struct {
	Box int `json:"caixa" validate:"min=0"`
}

var validateTestCases = []struct {
	name          string
	input         any
	expectedError string
}{
	{name: "EmptyFragment", input: fragmentRequest{Fragment: ""}},
	{name: "AccentedFragment", input: fragmentRequest{Fragment: "Joã"}},
	{name: "ControlCharacterFragment", input: fragmentRequest{Fragment: "ma\x00r"}, expectedError: "invalid client name fragment"},
	{name: "FragmentTooLong", input: fragmentRequest{Fragment: strings.Repeat("a", 101)}, expectedError: "value or length of field 'fragment' is not in the expected range"},
	{name: "Name", input: nameRequest{Name: "Maria Souza"}},
	{name: "BlankName", input: nameRequest{Name: "   "}, expectedError: "invalid name"},
	{name: "NegativeBox", input: boxRequest{Box: -1}, expectedError: "value or length of field 'caixa' is not in the expected range"},
	{name: "Box", input: boxRequest{Box: 3}},
}

func TestValidate(t *testing.T) {
	assert := require.New(t)
	validator, err := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.NoError(err, "could not create validator")

	for _, testCase := range validateTestCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert := require.New(t)
			err := validator.Validate(testCase.input)
			if testCase.expectedError == "" {
				assert.NoError(err)
				return
			}
			assert.EqualError(err, testCase.expectedError)
		})
	}
}
