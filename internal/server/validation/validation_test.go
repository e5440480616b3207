package validation

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/notebook/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"name" validate:"min=3" msg:"name must be 3 characters"`
	Email    string `json:"email" validate:"email" msg:"Enter a valid email"`
	Password string `json:"password" validate:"min=5" msg:"Password must be 5 characters" redact:"true"`
}

type plain struct {
	Title string `validate:"required"`
}

func TestStruct_Valid(t *testing.T) {
	err := New().Struct(&signup{Name: "Ann", Email: "ann@x.io", Password: "secret"})
	assert.NoError(t, err)
}

func TestStruct_CollectsEveryField(t *testing.T) {
	err := New().Struct(signup{Name: "An", Email: "bad", Password: "123"})

	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Fields, 3)

	assert.Equal(t, common.FieldError{Param: "name", Msg: "name must be 3 characters", Value: "An", Location: "body"}, ve.Fields[0])
	assert.Equal(t, common.FieldError{Param: "email", Msg: "Enter a valid email", Value: "bad", Location: "body"}, ve.Fields[1])
	assert.Equal(t, common.FieldError{Param: "password", Msg: "Password must be 5 characters", Value: "", Location: "body"}, ve.Fields[2])
}

func TestStruct_MinCountsCharacters(t *testing.T) {
	// three runes, six bytes
	err := New().Struct(signup{Name: "Аня", Email: "a@b.co", Password: "secret"})
	assert.NoError(t, err)
}

func TestStruct_DefaultMessage(t *testing.T) {
	err := New().Struct(plain{})

	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "Title", ve.Fields[0].Param)
	assert.Equal(t, "failed on 'required'", ve.Fields[0].Msg)
}

func TestStruct_NotAStruct(t *testing.T) {
	err := New().Struct("nope")
	require.Error(t, err)

	var ve *common.ValidationError
	assert.False(t, errors.As(err, &ve))
}
