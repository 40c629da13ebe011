//
//  Copyright © Zscaler Inc. All rights reserved.
//

package zcc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zcc/services/devices"
	"github.com/zscaler/zscaler-sdk-go/v3/zscaler/zcc/services/remove_devices"

	"github.com/zscaler/zscaler-mcp-server-sub000/pkg/tools"
)

type fakeAPI struct {
	records      []devices.GetDevices
	lastUsername string
	lastOSType   string
	removedUDIDs []string
	removedOS    int
}

func (f *fakeAPI) ListDevices(_ context.Context, username, osType string) ([]devices.GetDevices, error) {
	f.lastUsername = username
	f.lastOSType = osType
	return f.records, nil
}

func (f *fakeAPI) ForceRemoveDevices(_ context.Context, udids []string, osType int) (*remove_devices.RemoveDevicesResponse, error) {
	f.removedUDIDs = udids
	f.removedOS = osType
	return &remove_devices.RemoveDevicesResponse{}, nil
}

func TestDevices_ReadAllForwardsFilters(t *testing.T) {
	api := &fakeAPI{records: []devices.GetDevices{{Udid: "u-1"}}}
	h := &handlers{api: api, opts: tools.Options{}}

	_, _, err := h.devices(context.Background(), nil, &devicesArgs{
		Action:   "read_all",
		Username: "jan@example.com",
		OSType:   "MacOS",
	})
	require.NoError(t, err)
	assert.Equal(t, "jan@example.com", api.lastUsername)
	assert.Equal(t, "macos", api.lastOSType)
}

func TestDevices_UnknownOSTypeRejected(t *testing.T) {
	h := &handlers{api: &fakeAPI{}, opts: tools.Options{}}

	_, _, err := h.devices(context.Background(), nil, &devicesArgs{Action: "read_all", OSType: "beos"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown os_type")
}

func TestDevices_ForceRemove(t *testing.T) {
	api := &fakeAPI{}
	h := &handlers{api: api, opts: tools.Options{}}

	_, _, err := h.devices(context.Background(), nil, &devicesArgs{
		Action: "force_remove",
		UDIDs:  []string{"u-1", "u-2"},
		OSType: "windows",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u-1", "u-2"}, api.removedUDIDs)
	assert.Equal(t, 3, api.removedOS)
}

func TestDevices_ForceRemoveGated(t *testing.T) {
	api := &fakeAPI{}
	h := &handlers{api: api, opts: tools.Options{ReadOnly: true}}

	_, _, err := h.devices(context.Background(), nil, &devicesArgs{Action: "force_remove", UDIDs: []string{"u-1"}})
	require.Error(t, err)
	assert.Empty(t, api.removedUDIDs)
}

func TestDevices_ForceRemoveRequiresUDIDs(t *testing.T) {
	h := &handlers{api: &fakeAPI{}, opts: tools.Options{}}

	_, _, err := h.devices(context.Background(), nil, &devicesArgs{Action: "force_remove"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "udid")
}
