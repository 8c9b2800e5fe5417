package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/models"
)

const rendererTimeout = 30 * time.Second

// DocumentService renders invoice PDFs through the rendering service and
// keeps them in S3.
type DocumentService struct {
	rendererURL string
	client      *http.Client
	uploader    s3manageriface.UploaderAPI
	bucket      string
	logger      *logrus.Entry
}

func NewDocumentService(settings *models.Settings, rendererURL string) (*DocumentService, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(settings.GetAWSRegion()),
		Credentials: credentials.NewStaticCredentials(
			settings.Credentials["aws_access_key_id"],
			settings.Credentials["aws_secret_access_key"], ""),
	})
	if err != nil {
		return nil, errors.Wrap(err, "create aws session")
	}
	return NewDocumentServiceWithUploader(s3manager.NewUploader(sess), settings.GetS3Bucket(), rendererURL), nil
}

func NewDocumentServiceWithUploader(uploader s3manageriface.UploaderAPI, bucket string, rendererURL string) *DocumentService {
	return &DocumentService{
		rendererURL: rendererURL,
		client:      &http.Client{Timeout: rendererTimeout},
		uploader:    uploader,
		bucket:      bucket,
		logger:      logrus.WithField("component", "document_service"),
	}
}

func (s *DocumentService) Generate(ctx context.Context, doc models.InvoiceDocument) (*models.GeneratedDocument, error) {
	if s.rendererURL == "" {
		return nil, errors.New("PDF_RENDERER_URL is not configured")
	}
	pdf, err := s.render(ctx, doc)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s.pdf", doc.InvoiceNumber)
	key := fmt.Sprintf("invoices/%s/%s", documentYear(doc), filename)
	location, err := s.upload(ctx, key, pdf)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"invoice_id": doc.InvoiceId,
		"location":   location,
		"size":       len(pdf),
	}).Info("invoice document stored")
	return &models.GeneratedDocument{
		Path:     location,
		Filename: filename,
		Content:  pdf,
	}, nil
}

func (s *DocumentService) render(ctx context.Context, doc models.InvoiceDocument) ([]byte, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "encode invoice document")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.rendererURL, bytes.NewBuffer(b))
	if err != nil {
		return nil, errors.Wrap(err, "build render request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "render invoice document")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read rendered invoice document")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("renderer returned %d: %s", resp.StatusCode, truncate(body, 200))
	}
	if len(body) == 0 {
		return nil, errors.New("renderer returned an empty document")
	}
	return body, nil
}

func (s *DocumentService) upload(ctx context.Context, key string, data []byte) (string, error) {
	result, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", errors.Wrapf(err, "upload %s", key)
	}
	return aws.StringValue(&result.Location), nil
}

// documentYear files documents under the year the period ended in.
func documentYear(doc models.InvoiceDocument) string {
	if len(doc.PeriodEnd) >= 4 {
		return doc.PeriodEnd[:4]
	}
	return "unknown"
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}
