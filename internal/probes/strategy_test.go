package probes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/lanscope/internal/model"
)

func TestSmartScanPrefersLinkLayer(t *testing.T) {
	link := &fakeLink{
		available: true,
		devices: []model.NetworkDevice{
			{IP: "192.168.1.1", MAC: "a4:2b:b0:c1:d2:e3", IsOnline: true},
		},
	}
	engine := newTestEngine(&fakeCache{}, &fakeSweeper{}, nil, nil)

	selector := NewSelector(link, engine, nopLogger())
	result := selector.SmartScan(context.Background(), "192.168.1.0/24")

	assert.Equal(t, MethodARP, result.ScanMethod)
	assert.True(t, result.HasPermission)
	assert.NotEmpty(t, result.ScanID)
	require.Len(t, result.Devices, 1)
	assert.Equal(t, "192.168.1.1", result.Devices[0].IP)
}

func TestSmartScanFallsBackWithoutPrivilege(t *testing.T) {
	link := &fakeLink{available: false}
	engine := newTestEngine(&fakeCache{}, &fakeSweeper{online: []string{"192.168.1.9"}}, nil, nil)

	selector := NewSelector(link, engine, nopLogger())
	result := selector.SmartScan(context.Background(), "192.168.1.0/24")

	assert.Equal(t, MethodFallback, result.ScanMethod)
	assert.False(t, result.HasPermission)
	require.Len(t, result.Devices, 1)
	assert.Equal(t, "192.168.1.9", result.Devices[0].IP)
}

func TestSmartScanIDsAreUnique(t *testing.T) {
	link := &fakeLink{available: true}
	engine := newTestEngine(&fakeCache{}, &fakeSweeper{}, nil, nil)
	selector := NewSelector(link, engine, nopLogger())

	a := selector.SmartScan(context.Background(), "192.168.1.0/24")
	b := selector.SmartScan(context.Background(), "192.168.1.0/24")
	assert.NotEqual(t, a.ScanID, b.ScanID)
}
