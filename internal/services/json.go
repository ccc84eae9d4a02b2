package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

func marshalJSON(v any) (datatypes.JSON, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json payload: %w", err)
	}
	return datatypes.JSON(raw), nil
}
