package service

import (
	"errors"
	"io"
	"mime"
	"path/filepath"

	"github.com/chatfeed-dev/chatfeed/backend/internal/storage/fs"
	"github.com/chatfeed-dev/chatfeed/shared/api"
	"github.com/chatfeed-dev/chatfeed/shared/domain"
	internal_errors "github.com/chatfeed-dev/chatfeed/shared/errors"
)

type FileService interface {
	Upload(fileData io.Reader, originalFilename, contentType string) (api.UploadResponse, error)
	Open(filename string) (io.ReadCloser, error)
}

type MediaStorage interface {
	Save(fileData io.Reader, originalFilename string) (string, error)
	Read(filename string) (io.ReadCloser, error)
}

type File struct {
	files MediaStorage
	store MessageStore
}

func NewFile(files MediaStorage, store MessageStore) FileService {
	return &File{files: files, store: store}
}

// Upload saves the artifact first and only then appends the message, so a
// storage failure leaves no orphaned message/file pairing.
func (f *File) Upload(fileData io.Reader, originalFilename, contentType string) (api.UploadResponse, error) {
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(originalFilename))
	}
	msgType := domain.TypeOfMIME(contentType)

	storedName, err := f.files.Save(fileData, originalFilename)
	if err != nil {
		return api.UploadResponse{}, err
	}

	url := "/uploads/" + storedName
	filename := originalFilename
	if filename == "" {
		filename = storedName
	}

	f.store.Append(domain.Message{
		Type:     msgType,
		Content:  url,
		Filename: filename,
	})

	return api.UploadResponse{Url: url, Type: msgType, Filename: filename}, nil
}

func (f *File) Open(filename string) (io.ReadCloser, error) {
	file, err := f.files.Read(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotFound) {
			return nil, &internal_errors.ErrorWithStatusCode{Message: "File not found", StatusCode: 404}
		}
		return nil, err
	}
	return file, nil
}
