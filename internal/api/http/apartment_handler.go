package http

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"homestay-backend/internal/service"

	"github.com/gorilla/mux"
)

type ApartmentHandler struct {
	apartments service.ApartmentService
}

func NewApartmentHandler(apartments service.ApartmentService) *ApartmentHandler {
	return &ApartmentHandler{apartments: apartments}
}

// UploadApartment expects a multipart form: the "apartment" part holds the
// JSON description and every "images" part one picture.
func (h *ApartmentHandler) UploadApartment(w http.ResponseWriter, r *http.Request) {
	ownerID, err := actingUser(r, "")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		badRequest(w, "invalid multipart form")
		return
	}

	var in service.ApartmentInput
	if err := json.NewDecoder(strings.NewReader(r.FormValue("apartment"))).Decode(&in); err != nil {
		badRequest(w, "invalid apartment description")
		return
	}

	uploads, closeAll, err := formUploads(r.MultipartForm, "images")
	defer closeAll()
	if err != nil {
		badRequest(w, "invalid image upload")
		return
	}

	apt, err := h.apartments.UploadApartment(r.Context(), ownerID, in, uploads)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Apartment uploaded successfully", apt)
}

func formUploads(form *multipart.Form, field string) ([]service.Upload, func(), error) {
	var files []multipart.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	if form == nil {
		return nil, closeAll, nil
	}

	uploads := make([]service.Upload, 0, len(form.File[field]))
	for _, header := range form.File[field] {
		f, err := header.Open()
		if err != nil {
			return nil, closeAll, err
		}
		files = append(files, f)
		uploads = append(uploads, service.Upload{Filename: header.Filename, Content: f})
	}
	return uploads, closeAll, nil
}

func (h *ApartmentHandler) EditApartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "apartmentId")
	if !ok {
		badRequest(w, "invalid apartment id")
		return
	}
	var in service.ApartmentInput
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	actor, err := callerActor(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	apt, err := h.apartments.EditApartment(r.Context(), actor, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Apartment updated successfully", apt)
}

func (h *ApartmentHandler) GetApartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "apartmentId")
	if !ok {
		badRequest(w, "invalid apartment id")
		return
	}
	apt, err := h.apartments.GetApartment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Success", apt)
}

func (h *ApartmentHandler) ListApartments(w http.ResponseWriter, r *http.Request) {
	apartments, err := h.apartments.ListApartments(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, apartments, "No apartments found")
}

func (h *ApartmentHandler) ListUserApartments(w http.ResponseWriter, r *http.Request) {
	apartments, err := h.apartments.ListUserApartments(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, apartments, "No apartments found for the user")
}

func (h *ApartmentHandler) DeleteApartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "apartmentId")
	if !ok {
		badRequest(w, "invalid apartment id")
		return
	}
	actor, err := callerActor(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.apartments.DeleteApartment(r.Context(), actor, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Apartment deleted successfully", nil)
}
