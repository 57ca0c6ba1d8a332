package moodle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"strconv"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/logger"
)

// uploadFunction names upload.php in errors.
const uploadFunction = "upload"

// uploadedFile is one entry of the upload.php response.
type uploadedFile struct {
	Component string `json:"component"`
	ContextID int    `json:"contextid"`
	UserID    int    `json:"userid"`
	FileArea  string `json:"filearea"`
	Filename  string `json:"filename"`
	Filepath  string `json:"filepath"`
	ItemID    int    `json:"itemid"`
}

// UploadFiles uploads files into a new draft area in a single request.
func (c *Client) UploadFiles(ctx context.Context, files []domain.UploadFile) ([]domain.UploadedFile, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files to upload", domain.ErrInvalidInput)
	}

	body, contentType, err := c.multipartBody(files)
	if err != nil {
		return nil, err
	}

	logger.Debug("Uploading %d files", len(files))
	data, err := c.do(ctx, c.baseURL+UploadPath, contentType,
		func() io.Reader { return bytes.NewReader(body) })
	if err != nil {
		return nil, fmt.Errorf("%s: %w", uploadFunction, err)
	}
	if apiErr := parseException(uploadFunction, data); apiErr != nil {
		return nil, apiErr
	}

	var entries []uploadedFile
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: decode response: %v", domain.ErrRemoteCall, uploadFunction, err)
	}

	out := make([]domain.UploadedFile, len(entries))
	for i, e := range entries {
		out[i] = domain.UploadedFile{
			ItemID:    e.ItemID,
			Filename:  e.Filename,
			Filepath:  e.Filepath,
			Component: e.Component,
			FileArea:  e.FileArea,
		}
	}
	return out, nil
}

// multipartBody builds the form in memory. Each file is opened, copied and
// closed before the next one is read.
func (c *Client) multipartBody(files []domain.UploadFile) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{{"token", c.token}, {"itemid", "0"}, {"filepath", "/"}}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	for i, f := range files {
		if err := copyFile(w, "file_"+strconv.Itoa(i+1), f); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func copyFile(w *multipart.Writer, field string, f domain.UploadFile) error {
	src, err := os.Open(f.Path.String())
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Path, err)
	}
	defer src.Close()

	part, err := w.CreateFormFile(field, f.Name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("read %s: %w", f.Path, err)
	}
	return nil
}
