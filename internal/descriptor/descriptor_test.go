package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settingsOf unwraps connection.settings from a built descriptor.
func settingsOf(t *testing.T, d Descriptor) Settings {
	t.Helper()

	conn, ok := d["connection"].(map[string]any)
	require.True(t, ok, "descriptor must have a connection mapping")

	settings, ok := conn["settings"].(Settings)
	require.True(t, ok, "connection must have a settings mapping")
	return settings
}

// ─────────────────────────────────────────────
// RDP
// ─────────────────────────────────────────────

func TestRDP_RequiredFields(t *testing.T) {
	_, err := RDP(RDPParams{Hostname: "h", Username: "u", Password: ""})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "rdp", vErr.Mode)
	assert.Equal(t, []string{"password"}, vErr.Missing)
}

func TestRDP_AllFieldsMissing(t *testing.T) {
	_, err := RDP(RDPParams{})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"hostname", "username", "password"}, vErr.Missing)
	assert.Contains(t, err.Error(), "hostname")
	assert.Contains(t, err.Error(), "password")
}

func TestRDP_DefaultsAndFixedLeaves(t *testing.T) {
	d, err := RDP(RDPParams{Hostname: "192.168.1.100", Username: "Administrator", Password: "pass123"})
	require.NoError(t, err)

	settings := settingsOf(t, d)
	assert.Equal(t, "192.168.1.100", settings["hostname"])
	assert.Equal(t, DefaultWidth, settings["width"])
	assert.Equal(t, DefaultHeight, settings["height"])
	assert.Equal(t, 96, settings["dpi"])
	assert.Equal(t, "any", settings["security"])
	assert.Equal(t, true, settings["ignore-cert"])
	assert.Equal(t, false, settings["enable-wallpaper"])
}

func TestRDP_ExplicitResolution(t *testing.T) {
	d, err := RDP(RDPParams{Hostname: "h", Username: "u", Password: "p", Width: 1280, Height: 720})
	require.NoError(t, err)

	settings := settingsOf(t, d)
	assert.Equal(t, 1280, settings["width"])
	assert.Equal(t, 720, settings["height"])
}

func TestRDP_DriveBlock(t *testing.T) {
	d, err := RDP(RDPParams{Hostname: "h", Username: "u", Password: "p", EnableDrive: true})
	require.NoError(t, err)

	settings := settingsOf(t, d)
	assert.Equal(t, true, settings["enable-drive"])
	assert.Equal(t, "/tmp/guac-drive", settings["drive-path"])
	assert.Equal(t, true, settings["create-drive-path"])
}

func TestRDP_DriveDisabled(t *testing.T) {
	d, err := RDP(RDPParams{Hostname: "h", Username: "u", Password: "p", EnableDrive: false})
	require.NoError(t, err)

	settings := settingsOf(t, d)
	assert.NotContains(t, settings, "enable-drive")
	assert.NotContains(t, settings, "drive-path")
}

func TestRDP_RecordingBlock(t *testing.T) {
	d, err := RDP(RDPParams{Hostname: "h", Username: "u", Password: "p", EnableRecording: true})
	require.NoError(t, err)

	settings := settingsOf(t, d)
	assert.Equal(t, "${HISTORY_UUID}", settings["recording-path"])
	assert.Equal(t, "session", settings["recording-name"])
}

// ─────────────────────────────────────────────
// SSH
// ─────────────────────────────────────────────

func TestSSH_RequiresCredential(t *testing.T) {
	_, err := SSH(SSHParams{Hostname: "h", Username: "u"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "ssh", vErr.Mode)
	assert.Equal(t, []string{"password or private-key"}, vErr.Missing)
}

func TestSSH_PasswordPreferredOverPrivateKey(t *testing.T) {
	d, err := SSH(SSHParams{Hostname: "h", Username: "u", Password: "p", PrivateKey: "KEY"})
	require.NoError(t, err)

	settings := settingsOf(t, d)
	assert.Equal(t, "p", settings["password"])
	assert.NotContains(t, settings, "private-key")
}

func TestSSH_PrivateKeyOnly(t *testing.T) {
	d, err := SSH(SSHParams{Hostname: "h", Username: "u", PrivateKey: "KEY"})
	require.NoError(t, err)

	settings := settingsOf(t, d)
	assert.Equal(t, "KEY", settings["private-key"])
	assert.NotContains(t, settings, "password")
}

func TestSSH_FixedLeaves(t *testing.T) {
	d, err := SSH(SSHParams{Hostname: "h", Username: "u", Password: "p"})
	require.NoError(t, err)

	settings := settingsOf(t, d)
	assert.Equal(t, DefaultSSHPort, settings["port"])
	assert.Equal(t, 12, settings["font-size"])
	assert.Equal(t, "gray-black", settings["color-scheme"])
	assert.Equal(t, "xterm-256color", settings["terminal-type"])
}

func TestSSH_SFTPRootDerivedFromUsername(t *testing.T) {
	d, err := SSH(SSHParams{Hostname: "h", Username: "ubuntu", Password: "p", EnableSFTP: true})
	require.NoError(t, err)

	settings := settingsOf(t, d)
	assert.Equal(t, true, settings["enable-sftp"])
	assert.Equal(t, "/home/ubuntu", settings["sftp-root-directory"])
}

func TestSSH_RecordingUsesTypescriptKeys(t *testing.T) {
	d, err := SSH(SSHParams{Hostname: "h", Username: "u", Password: "p", EnableRecording: true})
	require.NoError(t, err)

	settings := settingsOf(t, d)
	assert.Equal(t, "${HISTORY_UUID}", settings["typescript-path"])
	assert.Equal(t, "session", settings["typescript-name"])
	assert.NotContains(t, settings, "recording-path")
}

// ─────────────────────────────────────────────
// VNC
// ─────────────────────────────────────────────

func TestVNC_RequiresHostname(t *testing.T) {
	_, err := VNC(VNCParams{})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "vnc", vErr.Mode)
	assert.Equal(t, []string{"hostname"}, vErr.Missing)
}

func TestVNC_Defaults(t *testing.T) {
	d, err := VNC(VNCParams{Hostname: "h"})
	require.NoError(t, err)

	settings := settingsOf(t, d)
	assert.Equal(t, DefaultVNCPort, settings["port"])
	assert.Equal(t, 24, settings["color-depth"])
	assert.NotContains(t, settings, "password")
}

func TestVNC_OptionalPasswordAndPort(t *testing.T) {
	d, err := VNC(VNCParams{Hostname: "h", Password: "vncpass", Port: 5901})
	require.NoError(t, err)

	settings := settingsOf(t, d)
	assert.Equal(t, "vncpass", settings["password"])
	assert.Equal(t, 5901, settings["port"])
}

// ─────────────────────────────────────────────
// Join
// ─────────────────────────────────────────────

func TestJoin_RequiresConnectionID(t *testing.T) {
	_, err := Join("", true)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "join", vErr.Mode)
}

func TestJoin_ExactShape(t *testing.T) {
	d, err := Join("abc-123", true)
	require.NoError(t, err)

	expected := Descriptor{
		"connection": map[string]any{
			"join": "abc-123",
			"settings": Settings{
				"read-only": true,
			},
		},
	}
	assert.Equal(t, expected, d)
}

func TestJoin_ReadOnlyDefaultsFalse(t *testing.T) {
	d, err := Join("abc-123", false)
	require.NoError(t, err)

	conn := d["connection"].(map[string]any)
	settings := conn["settings"].(Settings)
	assert.Equal(t, false, settings["read-only"])
	assert.NotContains(t, conn, "type")
}

// ─────────────────────────────────────────────
// Accessors
// ─────────────────────────────────────────────

func TestDescriptor_ProtocolAndHostname(t *testing.T) {
	d, err := RDP(RDPParams{Hostname: "10.0.0.1", Username: "u", Password: "p"})
	require.NoError(t, err)

	assert.Equal(t, "rdp", d.Protocol())
	assert.Equal(t, "10.0.0.1", d.Hostname())

	j, err := Join("abc-123", false)
	require.NoError(t, err)
	assert.Equal(t, "join:abc-123", j.Protocol())
	assert.Equal(t, "", j.Hostname())
}

func TestDescriptor_AccessorsOnUnknownShape(t *testing.T) {
	assert.Equal(t, "", Descriptor{}.Protocol())
	assert.Equal(t, "", Descriptor{}.Hostname())
}
