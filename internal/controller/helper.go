package controller

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

func (c *controller) generateTimeBasedId() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}

// decode unmarshals and validates a command payload.
func (c *controller) decode(payload json.RawMessage, input any) error {
	if err := json.Unmarshal(payload, input); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if validationErrs, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("validation error: %v", validationErrs)
	}

	return nil
}
