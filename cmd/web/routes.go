package main

import (
	"io/fs"
	"net/http"

	"github.com/justinas/alice"
	"github.com/mkromann/ugc-builder/ui"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	staticFiles, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static", http.FileServerFS(staticFiles)))
	mediaServer := http.FileServer(http.Dir(app.blobs.Dir()))
	mux.Handle("GET /media/", cacheForeverHeaders(http.StripPrefix("/media", mediaServer)))

	session := alice.New(app.sessionManager.LoadAndSave, noSurf, app.commonContext)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("GET /actors", session.ThenFunc(app.actorsPage))
	mux.Handle("POST /actors", session.ThenFunc(app.createActor))
	mux.Handle("GET /brands", session.ThenFunc(app.brandsPage))
	mux.Handle("POST /brands", session.ThenFunc(app.createBrand))
	mux.Handle("GET /briefs", session.ThenFunc(app.briefsPage))
	mux.Handle("GET /briefs/create", session.ThenFunc(app.briefCreatePage))
	mux.Handle("POST /briefs/create", session.ThenFunc(app.briefCreateSubmit))
	mux.Handle("GET /briefs/{id}", session.ThenFunc(app.briefDetailPage))

	mux.Handle("GET /api/healthy", http.HandlerFunc(app.healthy))
	mux.Handle("POST /api/generate-brief", session.ThenFunc(app.apiGenerateBrief))
	mux.Handle("POST /api/chat", session.ThenFunc(app.apiChat))
	mux.Handle("POST /api/chat/reset", session.ThenFunc(app.apiChatReset))
	mux.Handle("POST /api/generate-image", session.ThenFunc(app.apiGenerateImage))
	mux.Handle("GET /api/briefs", session.ThenFunc(app.apiListBriefs))
	mux.Handle("POST /api/briefs", session.ThenFunc(app.apiCreateBrief))
	mux.Handle("GET /api/briefs/{id}", session.ThenFunc(app.apiGetBrief))
	mux.Handle("POST /api/briefs/{id}/scenes/{sceneNumber}/image", session.ThenFunc(app.apiGenerateSceneImage))
	mux.Handle("POST /api/assets/upload", session.ThenFunc(app.apiUploadAsset))

	return app.recoverPanic(app.logRequest(secureHeaders(mux)))
}
