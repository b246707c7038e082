package entity

import "github.com/google/uuid"

type ButtonColor string

const (
	ColorPrimary ButtonColor = "primary"
	ColorAccent  ButtonColor = "accent"
	ColorWarn    ButtonColor = "warn"
)

// DialogRequest describes one confirmation or alert presentation.
// It lives only until the dialog resolves.
type DialogRequest struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	AcceptLabel string      `json:"accept_label"`
	CancelLabel string      `json:"cancel_label,omitempty"`
	AcceptColor ButtonColor `json:"accept_color"`
	CancelColor ButtonColor `json:"cancel_color,omitempty"`
	Closable    bool        `json:"closable"`
}

// SingleButton reports whether the dialog only offers the accept affordance.
func (d DialogRequest) SingleButton() bool {
	return d.CancelLabel == ""
}

// newDialog fills unset fields with the generic "Success!" alert and a fresh id.
func newDialog(d DialogRequest) DialogRequest {
	d.ID = uuid.New()
	if d.Title == "" {
		d.Title = "Success!"
	}
	if d.Description == "" {
		d.Description = "Your record was saved successfully!"
	}
	if d.AcceptLabel == "" {
		d.AcceptLabel = "OK"
	}
	if d.AcceptColor == "" {
		d.AcceptColor = ColorAccent
	}
	if d.CancelLabel != "" && d.CancelColor == "" {
		d.CancelColor = ColorWarn
	}
	return d
}

func CreatedDialog() DialogRequest {
	return newDialog(DialogRequest{
		AcceptLabel: "Go to listing",
		CancelLabel: "Register another movie",
		CancelColor: ColorPrimary,
		Closable:    true,
	})
}

func UpdatedDialog() DialogRequest {
	return newDialog(DialogRequest{
		Description: "Your record was updated successfully",
		AcceptLabel: "Go to listing",
	})
}

func ConfirmDeleteDialog() DialogRequest {
	return newDialog(DialogRequest{
		Title:       "Are you sure you want to delete?",
		Description: "If you are sure you want to delete, click OK",
		CancelLabel: "Cancel",
		AcceptColor: ColorWarn,
		CancelColor: ColorPrimary,
		Closable:    true,
	})
}

// ErrorDialog is the single-button alert shown when a persistence call fails.
func ErrorDialog(title, description string) DialogRequest {
	return newDialog(DialogRequest{
		Title:       title,
		Description: description,
		AcceptLabel: "Close",
		AcceptColor: ColorWarn,
	})
}
