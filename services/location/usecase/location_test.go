package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawseel/dispatch/services/location/repository"
)

func TestUpdatePositionValidates(t *testing.T) {
	uc := NewLocationUC(repository.NewRegistry())

	tests := []struct {
		name     string
		lat, lng float64
		wantErr  error
	}{
		{name: "valid", lat: 31.95, lng: 35.91, wantErr: nil},
		{name: "null island", lat: 0, lng: 0, wantErr: ErrMissingCoordinates},
		{name: "latitude too high", lat: 91, lng: 35.91, wantErr: ErrInvalidLatitude},
		{name: "latitude too low", lat: -91, lng: 35.91, wantErr: ErrInvalidLatitude},
		{name: "longitude too high", lat: 31.95, lng: 181, wantErr: ErrInvalidLongitude},
		{name: "longitude too low", lat: 31.95, lng: -181, wantErr: ErrInvalidLongitude},
		{name: "boundary latitude", lat: 90, lng: 35.91, wantErr: nil},
		{name: "boundary longitude", lat: 31.95, lng: 180, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.UpdatePosition("driver-1", tt.lat, tt.lng)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRejectedUpdateLeavesRegistryUntouched(t *testing.T) {
	uc := NewLocationUC(repository.NewRegistry())

	require.Error(t, uc.UpdatePosition("driver-1", 0, 0))
	_, ok := uc.Get("driver-1")
	assert.False(t, ok)
	assert.Nil(t, uc.SnapshotDirty())
}

func TestUpdateFlowsThroughToReads(t *testing.T) {
	uc := NewLocationUC(repository.NewRegistry())

	require.NoError(t, uc.UpdatePosition("driver-1", 31.95, 35.91))

	pos, ok := uc.Get("driver-1")
	require.True(t, ok)
	assert.Equal(t, 31.95, pos.Latitude)

	assert.Len(t, uc.GetAll(), 1)
	assert.Contains(t, uc.NearbyIDs(31.95, 35.91, 2), "driver-1")
}
