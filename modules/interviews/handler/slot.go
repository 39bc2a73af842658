package handler

import (
	"time"

	"github.com/andreypavlenko/jobber/modules/interviews/model"
)

func parseSlot(startRaw, endRaw string) (model.Slot, error) {
	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return model.Slot{}, err
	}
	end, err := time.Parse(time.RFC3339, endRaw)
	if err != nil {
		return model.Slot{}, err
	}
	return model.Slot{Start: start, End: end}, nil
}
