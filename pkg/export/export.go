package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/gowriprasath-v/train-traffic/core/model"
)

// WriteJSON writes the optimized schedule to w in JSON format.
func WriteJSON(w io.Writer, res model.ScheduleResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes the optimized schedule to w in CSV format, one row per
// train in platform order.
func WriteCSV(w io.Writer, res model.ScheduleResult) error {
	cw := csv.NewWriter(w)
	header := []string{"train_id", "platform", "scheduled", "arrival", "departure", "delay_minutes", "status", "platform_changed"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, tr := range res.Trains {
		delay := ""
		if tr.DelayMinutes != nil {
			delay = strconv.Itoa(*tr.DelayMinutes)
		}
		rec := []string{
			tr.TrainID,
			strconv.Itoa(tr.Platform),
			tr.Scheduled,
			tr.Arrival,
			tr.Departure,
			delay,
			tr.Status,
			strconv.FormatBool(tr.PlatformChanged),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
