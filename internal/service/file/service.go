package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding support
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/absensi-nh/absensi-backend-go/internal/pkg/storage"
)

type FileService interface {
	// UploadAttendanceProof uploads a clock action proof photo, compressed
	// to roughly 50-150KB. stage is the action name (clock_in, break_start,
	// break_end, clock_out, permit).
	UploadAttendanceProof(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string, stage string) (string, error)

	// UploadProfilePhoto uploads an employee profile photo
	UploadProfilePhoto(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	// UploadAnnouncementImage uploads an announcement banner image
	UploadAnnouncementImage(ctx context.Context, file io.Reader, filename string) (string, error)

	// UploadPermitAttachment uploads supporting evidence for a leave permit
	UploadPermitAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

func validateImageExt(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}
	return ext, nil
}

func imageContentType(ext string) string {
	if ext == ".png" {
		return "image/png"
	}
	return "image/jpeg"
}

// UploadAttendanceProof compresses and stores a proof photo under
// attendance/{date}/{employeeID}-{stage}-{timestamp}.jpg. Output is always
// JPEG after compression.
func (s *fileServiceImpl) UploadAttendanceProof(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string, stage string) (string, error) {
	if _, err := validateImageExt(filename); err != nil {
		return "", err
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	compressed, err := compressImage(buffer, 150*1024, 50*1024)
	if err != nil {
		return "", fmt.Errorf("failed to compress image: %w", err)
	}

	newFilename := fmt.Sprintf("%s-%s-%d.jpg", employeeID, stage, time.Now().Unix())
	path := filepath.Join("attendance", date.Format("2006-01-02"), newFilename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(compressed), path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload attendance proof: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) UploadProfilePhoto(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext, err := validateImageExt(filename)
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s-%s%s", employeeID, uuid.New().String(), ext)
	path := filepath.Join("profiles", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, imageContentType(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload profile photo: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) UploadAnnouncementImage(ctx context.Context, file io.Reader, filename string) (string, error) {
	ext, err := validateImageExt(filename)
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s-%d%s", uuid.New().String(), time.Now().Unix(), ext)
	path := filepath.Join("announcements", newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, imageContentType(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload announcement image: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) UploadPermitAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	newFilename := fmt.Sprintf("%s-%d%s", uuid.New().String(), time.Now().Unix(), ext)
	path := filepath.Join("permits", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, "application/octet-stream")
	if err != nil {
		return "", fmt.Errorf("failed to upload permit attachment: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// compressImage re-encodes an image so the output lands between minSize and
// maxSize bytes, lowering JPEG quality first and downscaling as a last step.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	if len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	quality := 85
	var compressed []byte

	for quality >= 50 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}

		compressed = buf.Bytes()

		if len(compressed) <= maxSize && len(compressed) >= minSize {
			return compressed, nil
		}

		if len(compressed) > maxSize {
			quality -= 5
			continue
		}

		if len(compressed) < minSize && quality <= 60 {
			return compressed, nil
		}

		break
	}

	if len(compressed) > maxSize {
		targetSize := 100 * 1024
		ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
		newWidth := int(float64(originalWidth) * ratio)
		newHeight := int(float64(originalHeight) * ratio)

		if newWidth < 600 {
			newWidth = 600
		}
		if newHeight < 400 {
			newHeight = 400
		}

		resized := resizeImage(img, newWidth, newHeight)

		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 70}); err != nil {
			return nil, fmt.Errorf("failed to encode resized image: %w", err)
		}

		compressed = buf.Bytes()
	}

	return compressed, nil
}

func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
