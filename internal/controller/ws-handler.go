package controller

import (
	"context"
	"encoding/json"

	"github.com/cineroom/client/internal/service/session"
	"github.com/cineroom/client/pkg/mediadata"
)

func (c *controller) handlePlay(ctx context.Context, _ json.RawMessage) error {
	return c.sessionService.Play(ctx)
}

func (c *controller) handlePause(ctx context.Context, _ json.RawMessage) error {
	return c.sessionService.Pause(ctx)
}

type SeekInput struct {
	Seconds float64 `json:"seconds" validate:"gte=0"`
}

func (c *controller) handleSeek(ctx context.Context, payload json.RawMessage) error {
	var input SeekInput
	if err := c.decode(payload, &input); err != nil {
		return err
	}

	return c.sessionService.Seek(ctx, input.Seconds)
}

type TimeUpdateInput struct {
	CurrentTime float64 `json:"current_time" validate:"gte=0"`
	IsPlaying   bool    `json:"is_playing"`
	Duration    float64 `json:"duration" validate:"gte=0"`
}

// handleTimeUpdate feeds the video element's periodic time report into the
// bridge player. It is the only command the engine expects continuously.
func (c *controller) handleTimeUpdate(ctx context.Context, payload json.RawMessage) error {
	var input TimeUpdateInput
	if err := c.decode(payload, &input); err != nil {
		return err
	}

	c.player.ReportTime(input.CurrentTime, input.IsPlaying, input.Duration)

	return nil
}

type AddItemInput struct {
	URL         string `json:"url" validate:"required"`
	Title       string `json:"title"`
	ExternalRef string `json:"external_ref"`
}

func (c *controller) handleAddItem(ctx context.Context, payload json.RawMessage) error {
	var input AddItemInput
	if err := c.decode(payload, &input); err != nil {
		return err
	}

	title := input.Title
	thumbnail := mediadata.Thumbnail(input.URL)
	if title == "" {
		if data, err := mediadata.Get(input.URL); err == nil {
			title = data.Title
			thumbnail = data.ThumbnailURL
		} else {
			c.logger.DebugContext(ctx, "failed to resolve item title", "url", input.URL, "error", err)
			title = "Video"
		}
	}

	item, err := c.sessionService.AppendItem(ctx, &session.AppendItemParams{
		Title:       title,
		URL:         input.URL,
		Thumbnail:   thumbnail,
		ExternalRef: input.ExternalRef,
	})
	if err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "item added", "item_id", item.Id, "title", item.Title)

	return nil
}

type RemoveItemInput struct {
	Index int `json:"index" validate:"gte=0"`
}

func (c *controller) handleRemoveItem(ctx context.Context, payload json.RawMessage) error {
	var input RemoveItemInput
	if err := c.decode(payload, &input); err != nil {
		return err
	}

	return c.sessionService.RemoveItem(ctx, input.Index)
}

type SetCurrentInput struct {
	Index int `json:"index" validate:"gte=0"`
}

func (c *controller) handleSetCurrent(ctx context.Context, payload json.RawMessage) error {
	var input SetCurrentInput
	if err := c.decode(payload, &input); err != nil {
		return err
	}

	return c.sessionService.SetCurrentIndex(ctx, input.Index)
}

func (c *controller) handleAdvance(ctx context.Context, _ json.RawMessage) error {
	return c.sessionService.Advance(ctx)
}

func (c *controller) handleMarkCompleted(ctx context.Context, _ json.RawMessage) error {
	return c.sessionService.MarkCompleted(ctx)
}

type SendMessageInput struct {
	Author string `json:"author"`
	Text   string `json:"text" validate:"required"`
}

func (c *controller) handleSendMessage(ctx context.Context, payload json.RawMessage) error {
	var input SendMessageInput
	if err := c.decode(payload, &input); err != nil {
		return err
	}

	return c.sessionService.SendMessage(ctx, input.Author, input.Text)
}

type SendReactionInput struct {
	Kind string `json:"kind" validate:"required"`
}

func (c *controller) handleSendReaction(ctx context.Context, payload json.RawMessage) error {
	var input SendReactionInput
	if err := c.decode(payload, &input); err != nil {
		return err
	}

	return c.sessionService.SendReaction(ctx, input.Kind)
}

type SendSignalInput struct {
	To      string          `json:"to" validate:"required"`
	Kind    string          `json:"kind" validate:"required"`
	Payload json.RawMessage `json:"payload"`
}

func (c *controller) handleSendSignal(ctx context.Context, payload json.RawMessage) error {
	var input SendSignalInput
	if err := c.decode(payload, &input); err != nil {
		return err
	}

	return c.sessionService.SendSignal(ctx, &session.SendSignalParams{
		To:      input.To,
		Kind:    input.Kind,
		Payload: input.Payload,
	})
}
