package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGarmentMode(t *testing.T) {
	tests := []struct {
		in      string
		want    GarmentMode
		wantErr bool
	}{
		{in: "MEN", want: ModeMen},
		{in: "women", want: ModeWomen},
		{in: " Women ", want: ModeWomen},
		{in: "KIDS", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGarmentMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGarmentMode_Slots(t *testing.T) {
	assert.Equal(t, []GarmentSlot{SlotTop, SlotBottom}, ModeMen.Slots())
	assert.Equal(t, []GarmentSlot{SlotTop, SlotBottom, SlotDress}, ModeWomen.Slots())

	assert.False(t, ModeMen.Allows(SlotDress), "dress slot is never offered in MEN mode")
	assert.True(t, ModeWomen.Allows(SlotDress))

	// callers must not be able to mutate the variant table
	slots := ModeMen.Slots()
	slots[0] = SlotDress
	assert.Equal(t, SlotTop, ModeMen.Slots()[0])
}

func TestParseBodySize(t *testing.T) {
	for _, size := range []string{"S", "M", "L"} {
		got, err := ParseBodySize(size)
		require.NoError(t, err)
		assert.Equal(t, size, got.String())
	}

	_, err := ParseBodySize("XL")
	assert.Error(t, err)
	_, err = ParseBodySize("m")
	assert.Error(t, err)
}
