package request

type OpenEditorRequest struct {
	ID *int64 `json:"id,omitempty" validate:"omitempty,gte=1"`
}

type OpenViewerRequest struct {
	ID int64 `json:"id" validate:"required,gte=1"`
}

type SetFieldRequest struct {
	Value string `json:"value"`
}

type DialogAnswerRequest struct {
	DialogID string `json:"dialog_id" validate:"required,uuid"`
	Accepted bool   `json:"accepted"`
}

type ListMoviesRequest struct {
	Page   int    `json:"page" validate:"min=1"`
	Limit  int    `json:"limit" validate:"min=1,max=100"`
	Search string `json:"q"`
	Genre  string `json:"genre"`
}
