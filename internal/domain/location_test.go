package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationRef_Key(t *testing.T) {
	assert.Equal(t, "main_warehouse", MainWarehouse().Key())
	assert.Equal(t, "branch:3", Branch(3).Key())
}

func TestParseLocationRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    LocationRef
		wantErr bool
	}{
		{name: "main warehouse", input: "main_warehouse", want: MainWarehouse()},
		{name: "branch form", input: "branch:2", want: Branch(2)},
		{name: "bare numeric", input: "7", want: Branch(7)},
		{name: "surrounding whitespace", input: "  branch:1 ", want: Branch(1)},
		{name: "zero id", input: "branch:0", wantErr: true},
		{name: "negative id", input: "-3", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "bodega", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocationRef(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLocationRef_RoundTrip(t *testing.T) {
	for _, ref := range []LocationRef{MainWarehouse(), Branch(1), Branch(42)} {
		parsed, err := ParseLocationRef(ref.Key())
		assert.NoError(t, err)
		assert.Equal(t, ref, parsed)
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusInitiated.Terminal())
	assert.True(t, StatusAuthorized.Terminal())
	assert.True(t, StatusRejected.Terminal())
}
