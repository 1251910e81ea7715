package subscription

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SubscribeRequest
		wantErr bool
	}{
		{
			name: "valid pair",
			req:  SubscribeRequest{Name: "le guin", Email: "ursula_le_guin@gmail.com"},
		},
		{
			name:    "empty name",
			req:     SubscribeRequest{Name: "", Email: "ursula_le_guin@gmail.com"},
			wantErr: true,
		},
		{
			name:    "empty email",
			req:     SubscribeRequest{Name: "le guin", Email: ""},
			wantErr: true,
		},
		{
			name:    "email missing at symbol",
			req:     SubscribeRequest{Name: "le guin", Email: "ursula.com"},
			wantErr: true,
		},
		{
			name:    "email missing subject",
			req:     SubscribeRequest{Name: "le guin", Email: "@gmail.com"},
			wantErr: true,
		},
		{
			name:    "name with forbidden characters",
			req:     SubscribeRequest{Name: `<script>`, Email: "ursula_le_guin@gmail.com"},
			wantErr: true,
		},
		{
			name:    "name with slash",
			req:     SubscribeRequest{Name: "le/guin", Email: "ursula_le_guin@gmail.com"},
			wantErr: true,
		},
		{
			name: "name at the length limit",
			req:  SubscribeRequest{Name: strings.Repeat("a", 256), Email: "a@b.com"},
		},
		{
			name:    "name over the length limit",
			req:     SubscribeRequest{Name: strings.Repeat("a", 257), Email: "a@b.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubscribeRequest_ToNewSubscriber(t *testing.T) {
	req := SubscribeRequest{Name: "le guin", Email: "ursula_le_guin@gmail.com"}

	sub, err := req.ToNewSubscriber()
	require.NoError(t, err)
	assert.Equal(t, "le guin", sub.Name)
	assert.Equal(t, "ursula_le_guin@gmail.com", sub.Email)
}

func TestSubscribeRequest_ToNewSubscriber_Invalid(t *testing.T) {
	req := SubscribeRequest{Name: "le guin", Email: "not-an-email"}

	_, err := req.ToNewSubscriber()
	assert.Error(t, err)
}
