package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
)

// Archive keeps lecture records that were replaced by a newer lecture.
type Archive interface {
	ArchiveLecture(ctx context.Context, doctorID int, l model.Lecture) (string, error)
}

type LocalArchive struct {
	dir string
}

type SpacesArchive struct {
	client *s3.S3
	bucket string
	prefix string
}

var (
	_ Archive = (*LocalArchive)(nil)
	_ Archive = (*SpacesArchive)(nil)
)

func NewLocalArchive(dir string) *LocalArchive {
	return &LocalArchive{dir: dir}
}

func NewSpacesArchive(endpoint, region, bucket, accessKey, secretKey string) (*SpacesArchive, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesArchive{
		client: s3.New(sess),
		bucket: bucket,
		prefix: "lectures",
	}, nil
}

// objectName is doctor-<id>/<code>_<created>.json; created is compact UTC so
// names sort by creation time.
func objectName(doctorID int, l model.Lecture) string {
	created := l.CreatedAt.UTC().Format("20060102_150405")
	return path.Join(fmt.Sprintf("doctor-%d", doctorID), fmt.Sprintf("%d_%s.json", l.Code, created))
}

func (la *LocalArchive) ArchiveLecture(_ context.Context, doctorID int, l model.Lecture) (string, error) {
	payload, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode lecture: %w", err)
	}

	target := filepath.Join(la.dir, filepath.FromSlash(objectName(doctorID, l)))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}
	if err := os.WriteFile(target, payload, 0o644); err != nil {
		return "", fmt.Errorf("failed to write archived lecture: %w", err)
	}

	log.Debug().Str("path", target).Msg("lecture archived locally")
	return target, nil
}

func (sa *SpacesArchive) ArchiveLecture(ctx context.Context, doctorID int, l model.Lecture) (string, error) {
	payload, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("failed to encode lecture: %w", err)
	}

	key := strings.TrimPrefix(path.Join(sa.prefix, objectName(doctorID, l)), "/")

	_, err = sa.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(sa.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
		ACL:         aws.String("private"),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to upload lecture to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	return key, nil
}
