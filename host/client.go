// Package host implements the controller side of the protocol: it drives
// a device through its Transport, reconstructing the full schema (spec
// §4.6) and exposing a composed view plus a diagnostic ring log of
// recent request/response frames.
package host

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/piksel/mbconf"
)

// Exchanger is the minimal surface a host client needs from a transport;
// satisfied by every type in package transport.
type Exchanger interface {
	Exchange(ctx context.Context, request [mbconf.MessageLength]byte) ([mbconf.MessageLength]byte, error)
}

// Client drives a device and reconstructs its schema. One in-flight
// exchange is performed at a time per connection (spec §5).
type Client struct {
	tr       Exchanger
	logger   *log.Logger
	history  *RingLog
	progress chan ProgressEvent
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithLogger overrides the default (silent) logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHistoryCapacity overrides the default ring-log capacity.
func WithHistoryCapacity(n int) Option {
	return func(c *Client) { c.history = NewRingLog(n) }
}

// New builds a Client bound to tr.
func New(tr Exchanger, opts ...Option) *Client {
	c := &Client{
		tr:       tr,
		logger:   log.New(io.Discard),
		history:  NewRingLog(64),
		progress: make(chan ProgressEvent, 16),
	}
	c.logger.SetLevel(log.WarnLevel)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Progress returns the single-producer/single-consumer channel schema
// discovery publishes progress events to. The channel buffers 16 events;
// an event sent while the buffer is full is dropped, so delivery is at
// most once and a reader that falls behind misses events.
func (c *Client) Progress() <-chan ProgressEvent {
	return c.progress
}

// History returns the ring log of recent request/response pairs.
func (c *Client) History() *RingLog {
	return c.history
}

// exchange performs one request/response round trip, recording it in the
// history ring and the debug log.
func (c *Client) exchange(ctx context.Context, req [mbconf.MessageLength]byte) ([mbconf.MessageLength]byte, error) {
	resp, err := c.tr.Exchange(ctx, req)
	if err != nil {
		c.logger.Error("exchange failed", "err", err)
		return resp, err
	}
	c.history.Push(req, resp)
	c.logger.Debug("exchange", "request", fmt.Sprintf("%X", req[:]), "response", fmt.Sprintf("%X", resp[:]))
	if resp[0] != 1 {
		kind := mbconf.ErrorKind(resp[1])
		c.logger.Debug("device returned error", "kind", kind)
		return resp, mbconf.NewError(kind)
	}
	return resp, nil
}

// Meta fetches the schema entry counts (spec §4.5).
func (c *Client) Meta(ctx context.Context) (sections, props, infos, actions int, err error) {
	var req [mbconf.MessageLength]byte
	req[0] = 'm'
	resp, err := c.exchange(ctx, req)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return int(resp[2]), int(resp[3]), int(resp[4]), int(resp[5]), nil
}

// query sends a Query command for (kind, idx, target), plus the option
// index when target is QueryOption, and returns the response frame.
func (c *Client) query(ctx context.Context, kind mbconf.EntryKind, idx uint8, target mbconf.QueryTarget, optIdx uint16) ([mbconf.MessageLength]byte, error) {
	var req [mbconf.MessageLength]byte
	req[0] = 'q'
	req[1] = byte(kind)
	req[2] = idx
	req[3] = byte(target)
	if target == mbconf.QueryOption {
		req[4] = byte(optIdx)
		req[5] = byte(optIdx >> 8)
	}
	return c.exchange(ctx, req)
}

// FetchDescriptor fetches the field descriptor for (kind, idx) and decodes
// it into a RawDescriptor. The constraint bytes are kept undecoded; the
// caller picks AsRange, AsLength or AsValues to interpret them.
func (c *Client) FetchDescriptor(ctx context.Context, kind mbconf.EntryKind, idx uint8) (RawDescriptor, error) {
	resp, err := c.query(ctx, kind, idx, mbconf.QueryField, 0)
	if err != nil {
		return RawDescriptor{}, err
	}
	return decodeRawDescriptor(resp), nil
}

// FetchText fetches Help or Icon text for (kind, idx); target must be
// QueryHelp or QueryIcon.
func (c *Client) FetchText(ctx context.Context, kind mbconf.EntryKind, idx uint8, target mbconf.QueryTarget) (string, error) {
	resp, err := c.query(ctx, kind, idx, target, 0)
	if err != nil {
		return "", err
	}
	return trimZero(resp[1:]), nil
}

// FetchLayout fetches the ordered field references belonging to section
// idx.
func (c *Client) FetchLayout(ctx context.Context, sectionIdx uint8) ([]mbconf.FieldRef, error) {
	resp, err := c.query(ctx, mbconf.KindSection, sectionIdx, mbconf.QueryLayout, 0)
	if err != nil {
		return nil, err
	}
	var refs []mbconf.FieldRef
	for i := 1; i+1 < mbconf.MessageLength; i += 2 {
		kind := mbconf.EntryKind(resp[i])
		if kind == 0 {
			break
		}
		refs = append(refs, mbconf.FieldRef{Kind: kind, Index: resp[i+1]})
	}
	return refs, nil
}

// FetchOption fetches the label for option index optIdx of (kind, idx).
func (c *Client) FetchOption(ctx context.Context, kind mbconf.EntryKind, idx uint8, optIdx uint16) (string, error) {
	resp, err := c.query(ctx, kind, idx, mbconf.QueryOption, optIdx)
	if err != nil {
		return "", err
	}
	return trimZero(resp[1:]), nil
}

// DiscoverSchema walks the full schema-fetch sequence of spec §4.6 and
// returns a composed Schema, publishing ProgressEvents as it goes.
func (c *Client) DiscoverSchema(ctx context.Context) (*Schema, error) {
	sectionCount, propCount, infoCount, actionCount, err := c.Meta(ctx)
	if err != nil {
		return nil, fmt.Errorf("mbconf/host: meta: %w", err)
	}
	c.emitProgress(ProgressEvent{Stage: "meta", Total: 1, Done: 1})

	schema := &Schema{}

	for i := 0; i < sectionCount; i++ {
		desc, err := c.FetchDescriptor(ctx, mbconf.KindSection, uint8(i))
		if err != nil {
			return nil, fmt.Errorf("mbconf/host: section %d descriptor: %w", i, err)
		}
		layout, err := c.FetchLayout(ctx, uint8(i))
		if err != nil {
			return nil, fmt.Errorf("mbconf/host: section %d layout: %w", i, err)
		}
		schema.Sections = append(schema.Sections, SectionView{Index: uint8(i), Desc: desc, Layout: layout})
		c.emitProgress(ProgressEvent{Stage: "sections", Total: sectionCount, Done: i + 1})
	}

	schema.Props, err = c.fetchFields(ctx, mbconf.KindProp, propCount, "props")
	if err != nil {
		return nil, err
	}
	schema.Infos, err = c.fetchFields(ctx, mbconf.KindInfo, infoCount, "infos")
	if err != nil {
		return nil, err
	}

	for i := 0; i < actionCount; i++ {
		desc, err := c.FetchDescriptor(ctx, mbconf.KindAction, uint8(i))
		if err != nil {
			return nil, fmt.Errorf("mbconf/host: action %d descriptor: %w", i, err)
		}
		schema.Actions = append(schema.Actions, desc)
		c.emitProgress(ProgressEvent{Stage: "actions", Total: actionCount, Done: i + 1})
	}

	return schema, nil
}

func (c *Client) fetchFields(ctx context.Context, kind mbconf.EntryKind, count int, stage string) ([]RawDescriptor, error) {
	out := make([]RawDescriptor, 0, count)
	for i := 0; i < count; i++ {
		desc, err := c.FetchDescriptor(ctx, kind, uint8(i))
		if err != nil {
			return nil, fmt.Errorf("mbconf/host: %s %d descriptor: %w", stage, i, err)
		}
		if desc.Flags.HasHelp() {
			help, err := c.FetchText(ctx, kind, uint8(i), mbconf.QueryHelp)
			if err != nil {
				return nil, fmt.Errorf("mbconf/host: %s %d help: %w", stage, i, err)
			}
			desc.Help = help
		}
		if desc.Flags.HasIcon() {
			icon, err := c.FetchText(ctx, kind, uint8(i), mbconf.QueryIcon)
			if err != nil {
				return nil, fmt.Errorf("mbconf/host: %s %d icon: %w", stage, i, err)
			}
			desc.Icon = icon
		}
		out = append(out, desc)
		c.emitProgress(ProgressEvent{Stage: stage, Total: count, Done: i + 1})
	}
	return out, nil
}

func (c *Client) emitProgress(ev ProgressEvent) {
	select {
	case c.progress <- ev:
	default:
		// Drop rather than block the discovery goroutine; the channel is
		// a best-effort progress feed, not a guaranteed-delivery log
		// (that's what History() is for).
	}
}

func trimZero(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
