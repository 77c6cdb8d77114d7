package nix

import (
	"fmt"
	"strings"
)

// Channel is one subscribed nix-channel entry.
type Channel struct {
	Name string
	URL  string
}

// Channels returns the user's subscribed channels.
func (t *Tool) Channels() ([]Channel, error) {
	out, err := t.runner.Output("nix-channel", "--list")
	if err != nil {
		return nil, fmt.Errorf("could not list channels: %w", err)
	}
	return parseChannelList(string(out)), nil
}

// parseChannelList parses `nix-channel --list` output: one "name url" pair
// per line.
func parseChannelList(out string) []Channel {
	var channels []Channel
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		channels = append(channels, Channel{Name: fields[0], URL: fields[1]})
	}
	return channels
}

// HasChannel reports whether a channel with the given name is subscribed.
func (t *Tool) HasChannel(name string) (bool, error) {
	channels, err := t.Channels()
	if err != nil {
		return false, err
	}
	for _, ch := range channels {
		if ch.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// AddChannel subscribes a channel and fetches its initial contents.
func (t *Tool) AddChannel(name, url string) error {
	if err := t.run(nil, "nix-channel", "--add", url, name); err != nil {
		return fmt.Errorf("could not add channel %s: %w", name, err)
	}
	if err := t.run(nil, "nix-channel", "--update", name); err != nil {
		return fmt.Errorf("could not update channel %s: %w", name, err)
	}
	return nil
}
