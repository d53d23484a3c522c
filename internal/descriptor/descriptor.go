// SPDX-License-Identifier: Apache-2.0

// Package descriptor builds the nested connection structures the guacamole
// gateway expects inside an encrypted token.
//
// Every builder is a pure function: it validates its required inputs, applies
// protocol defaults, and returns a fresh [Descriptor]. Nothing here touches
// the cipher; validation failures are [*ValidationError] values raised before
// any encryption work.
package descriptor

// Descriptor is the nested key-value structure describing a connection
// request or a session join, prior to encryption. Its single top-level key is
// always "connection".
type Descriptor map[string]any

// Settings is the protocol-specific leaf mapping nested under
// connection.settings.
type Settings map[string]any

// Protocol defaults and fixed leaf values. These mirror what the gateway
// deployment expects and are not user-configurable.
const (
	DefaultWidth   = 1920
	DefaultHeight  = 1080
	DefaultSSHPort = 22
	DefaultVNCPort = 5900

	drivePath = "/tmp/guac-drive"

	// recordingPath is a literal placeholder substituted by the gateway at
	// session start; this tool never resolves it.
	recordingPath = "${HISTORY_UUID}"
	recordingName = "session"
)

// RDPParams carries the inputs for an RDP connection descriptor.
// Hostname, Username, and Password are required. Width and Height fall back
// to [DefaultWidth] and [DefaultHeight] when not positive.
type RDPParams struct {
	Hostname string
	Username string
	Password string
	Width    int
	Height   int

	// EnableDrive adds the shared-drive settings block.
	EnableDrive bool
	// EnableRecording adds the session-recording settings block.
	EnableRecording bool
}

// SSHParams carries the inputs for an SSH connection descriptor.
// Hostname and Username are required, plus at least one of Password or
// PrivateKey. When both are given, Password wins and PrivateKey is ignored.
type SSHParams struct {
	Hostname   string
	Username   string
	Password   string
	PrivateKey string

	// EnableSFTP adds the SFTP settings block, rooted at the user's home.
	EnableSFTP bool
	// EnableRecording adds the typescript-recording settings block.
	EnableRecording bool
}

// VNCParams carries the inputs for a VNC connection descriptor.
// Hostname is required; Password is optional. Port falls back to
// [DefaultVNCPort] when not positive.
type VNCParams struct {
	Hostname string
	Password string
	Port     int

	EnableRecording bool
}

// RDP builds the descriptor for a direct RDP connection.
func RDP(p RDPParams) (Descriptor, error) {
	err := validate("rdp",
		map[string]string{"hostname": p.Hostname, "username": p.Username, "password": p.Password},
		[]string{"hostname", "username", "password"})
	if err != nil {
		return nil, err
	}

	width, height := p.Width, p.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	settings := Settings{
		"hostname":         p.Hostname,
		"username":         p.Username,
		"password":         p.Password,
		"width":            width,
		"height":           height,
		"dpi":              96,
		"security":         "any",
		"ignore-cert":      true,
		"enable-wallpaper": false,
	}

	if p.EnableDrive {
		settings["enable-drive"] = true
		settings["drive-path"] = drivePath
		settings["create-drive-path"] = true
	}
	if p.EnableRecording {
		settings["recording-path"] = recordingPath
		settings["recording-name"] = recordingName
	}

	return connection("rdp", settings), nil
}

// SSH builds the descriptor for a direct SSH connection.
func SSH(p SSHParams) (Descriptor, error) {
	err := validate("ssh",
		map[string]string{"hostname": p.Hostname, "username": p.Username},
		[]string{"hostname", "username"})
	if err != nil {
		return nil, err
	}
	if p.Password == "" && p.PrivateKey == "" {
		return nil, &ValidationError{Mode: "ssh", Missing: []string{"password or private-key"}}
	}

	settings := Settings{
		"hostname":      p.Hostname,
		"username":      p.Username,
		"port":          DefaultSSHPort,
		"font-size":     12,
		"color-scheme":  "gray-black",
		"terminal-type": "xterm-256color",
	}

	// Password is preferred when both credentials are supplied.
	if p.Password != "" {
		settings["password"] = p.Password
	} else {
		settings["private-key"] = p.PrivateKey
	}

	if p.EnableSFTP {
		settings["enable-sftp"] = true
		settings["sftp-root-directory"] = "/home/" + p.Username
	}
	if p.EnableRecording {
		settings["typescript-path"] = recordingPath
		settings["typescript-name"] = recordingName
	}

	return connection("ssh", settings), nil
}

// VNC builds the descriptor for a direct VNC connection.
func VNC(p VNCParams) (Descriptor, error) {
	err := validate("vnc",
		map[string]string{"hostname": p.Hostname},
		[]string{"hostname"})
	if err != nil {
		return nil, err
	}

	port := p.Port
	if port <= 0 {
		port = DefaultVNCPort
	}

	settings := Settings{
		"hostname":    p.Hostname,
		"port":        port,
		"color-depth": 24,
	}

	if p.Password != "" {
		settings["password"] = p.Password
	}
	if p.EnableRecording {
		settings["recording-path"] = recordingPath
		settings["recording-name"] = recordingName
	}

	return connection("vnc", settings), nil
}

// Join builds the descriptor for joining an existing session by its
// connection identifier.
func Join(connectionID string, readOnly bool) (Descriptor, error) {
	err := validate("join",
		map[string]string{"connection-id": connectionID},
		[]string{"connection-id"})
	if err != nil {
		return nil, err
	}

	return Descriptor{
		"connection": map[string]any{
			"join": connectionID,
			"settings": Settings{
				"read-only": readOnly,
			},
		},
	}, nil
}

// connection wraps protocol settings into the gateway's top-level shape.
func connection(protocol string, settings Settings) Descriptor {
	return Descriptor{
		"connection": map[string]any{
			"type":     protocol,
			"settings": settings,
		},
	}
}

// Hostname returns connection.settings.hostname, or "" if absent. Intended
// for logging and the decode service's response summary.
func (d Descriptor) Hostname() string {
	conn, ok := d["connection"].(map[string]any)
	if !ok {
		return ""
	}

	// Built descriptors carry Settings, decoded ones a plain map.
	var settings map[string]any
	switch s := conn["settings"].(type) {
	case Settings:
		settings = s
	case map[string]any:
		settings = s
	default:
		return ""
	}

	host, _ := settings["hostname"].(string)
	return host
}

// Protocol returns connection.type, or "join:<id>" for join descriptors,
// or "" when the shape is unrecognized.
func (d Descriptor) Protocol() string {
	conn, ok := d["connection"].(map[string]any)
	if !ok {
		return ""
	}
	if t, ok := conn["type"].(string); ok {
		return t
	}
	if j, ok := conn["join"].(string); ok {
		return "join:" + j
	}
	return ""
}
