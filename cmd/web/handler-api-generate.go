package main

import (
	"net/http"

	"github.com/mkromann/ugc-builder/internal/models"
)

// chatThreadSessionKey remembers the active assistant thread across page reloads so a
// conversation survives until the client explicitly resets it.
const chatThreadSessionKey = "chatThreadID"

type generateBriefRequest struct {
	URL string `json:"url"`
}

// apiGenerateBrief runs the URL-to-brief pipeline and returns the draft without
// persisting it. Saving is a separate POST /api/briefs call once the caller is happy
// with the draft.
func (app *application) apiGenerateBrief(w http.ResponseWriter, r *http.Request) {
	var req generateBriefRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.apiError(w, r, http.StatusBadRequest, "Invalid request body.")
		return
	}

	brief, err := app.generator.Generate(r.Context(), req.URL)
	if err != nil {
		status, message := generationFailure(err)
		if status == http.StatusInternalServerError {
			app.serverError(w, r, err)
			return
		}
		app.apiError(w, r, status, message)
		return
	}

	app.writeJSON(w, r, http.StatusOK, brief)
}

type chatRequest struct {
	Message  string `json:"message"`
	ThreadID string `json:"threadId"`
}

type chatResponse struct {
	ChatResponseText string             `json:"chatResponseText"`
	BriefData        *models.BriefDelta `json:"briefData"`
	Scenes           []models.Scene     `json:"scenes,omitempty"`
	ThreadID         string             `json:"threadId"`
}

// apiChat runs one turn of the conversational brief editor. The thread handle is
// taken from the request when given, falling back to the session, so both stateless
// API clients and the browser UI can hold a conversation.
func (app *application) apiChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.apiError(w, r, http.StatusBadRequest, "Invalid request body.")
		return
	}

	threadID := req.ThreadID
	if threadID == "" {
		threadID = app.sessionManager.GetString(r.Context(), chatThreadSessionKey)
	}

	result, err := app.chat.Turn(r.Context(), req.Message, threadID)
	if err != nil {
		status, message := chatFailure(err)
		if status == http.StatusInternalServerError {
			app.serverError(w, r, err)
			return
		}
		app.apiError(w, r, status, message)
		return
	}

	app.sessionManager.Put(r.Context(), chatThreadSessionKey, result.ThreadID)

	app.writeJSON(w, r, http.StatusOK, chatResponse{
		ChatResponseText: result.DisplayText,
		BriefData:        result.Delta,
		Scenes:           result.Scenes,
		ThreadID:         result.ThreadID,
	})
}

// apiChatReset forgets the session's assistant thread so the next turn starts a fresh
// conversation.
func (app *application) apiChatReset(w http.ResponseWriter, r *http.Request) {
	app.sessionManager.Remove(r.Context(), chatThreadSessionKey)
	w.WriteHeader(http.StatusNoContent)
}

type generateImageRequest struct {
	Prompt string `json:"prompt"`
}

type generateImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

// apiGenerateImage generates a standalone image and returns the short-lived URL the
// model provider hosts it at. Scene images that should persist go through the
// per-scene endpoint instead.
func (app *application) apiGenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generateImageRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.apiError(w, r, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Prompt == "" {
		app.apiError(w, r, http.StatusBadRequest, "Prompt is required.")
		return
	}

	imageURL, err := app.images.GenerateImageURL(r.Context(), req.Prompt)
	if err != nil {
		app.apiError(w, r, http.StatusBadGateway, "Image generation failed. Please try again.")
		return
	}

	app.writeJSON(w, r, http.StatusOK, generateImageResponse{ImageURL: imageURL})
}
