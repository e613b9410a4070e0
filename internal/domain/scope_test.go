package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/pkg/ptr"
)

func TestNewScope(t *testing.T) {
	tests := []struct {
		name       string
		serviceID  *int64
		campaignID *int64
		want       Scope
		wantErr    error
	}{
		{
			name:      "service scope",
			serviceID: ptr.Ptr(int64(42)),
			want:      Scope{Type: ScopeService, ID: 42},
		},
		{
			name:       "campaign scope",
			campaignID: ptr.Ptr(int64(7)),
			want:       Scope{Type: ScopeCampaign, ID: 7},
		},
		{
			name:    "neither reference",
			wantErr: ErrScopeMissing,
		},
		{
			name:       "both references",
			serviceID:  ptr.Ptr(int64(42)),
			campaignID: ptr.Ptr(int64(7)),
			wantErr:    ErrScopeAmbiguous,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := NewScope(tt.serviceID, tt.campaignID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, scope)
		})
	}
}

func TestScope_References(t *testing.T) {
	service := Scope{Type: ScopeService, ID: 42}
	require.NotNil(t, service.ServiceID())
	assert.Equal(t, int64(42), *service.ServiceID())
	assert.Nil(t, service.CampaignID())
	assert.Equal(t, "service:42", service.String())

	campaign := Scope{Type: ScopeCampaign, ID: 7}
	require.NotNil(t, campaign.CampaignID())
	assert.Equal(t, int64(7), *campaign.CampaignID())
	assert.Nil(t, campaign.ServiceID())
	assert.Equal(t, "campaign:7", campaign.String())
}

func TestStatusFromCount(t *testing.T) {
	assert.Equal(t, SlotAvailable, StatusFromCount(0, 3))
	assert.Equal(t, SlotAvailable, StatusFromCount(2, 3))
	assert.Equal(t, SlotBooked, StatusFromCount(3, 3))
}

func TestSlot_AvailableSpots(t *testing.T) {
	s := &Slot{MaxCapacity: 3, CurrentBookings: 2}
	assert.Equal(t, 1, s.AvailableSpots())
	assert.False(t, s.IsFull())

	s.CurrentBookings = 3
	assert.Equal(t, 0, s.AvailableSpots())
	assert.True(t, s.IsFull())
}
