package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/cellularmitosis/retainn/internal/helpers"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"storj.io/uplink"
)

var (
	ErrDeckNotExist = errors.New("deck does not exist")
)

// HTTPStatusError reports an unexpected HTTP response.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s for %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// FetchResult is the outcome of a fetch.
// When NotModified is set, Content is empty and the stored deck is still current.
type FetchResult struct {
	Content     []byte
	ETag        string
	NotModified bool
}

// Source provides an abstraction in front of the locations decks are fetched from.
//
// A source returns an opaque ETag with the content. When the previous ETag
// is still current, the source can skip the download and report NotModified.
type Source interface {
	Fetch(ctx context.Context, deckURL string, previousETag string) (*FetchResult, error)
}

// SourceFor returns the source able to fetch the given URL.
func SourceFor(deckURL string) (Source, error) {
	u, err := url.Parse(deckURL)
	if err != nil {
		return nil, fmt.Errorf("invalid deck URL %q: %w", deckURL, err)
	}
	config := CurrentConfig().ConfigFile
	switch u.Scheme {
	case "http", "https":
		return NewHTTPSource(config.HTTPTimeout(), config.HTTP.UserAgent), nil
	case "", "file":
		return NewFSSource(), nil
	case "s3":
		return NewS3SourceWithCredentials(config.S3.Endpoint, config.S3.AccessKey, config.S3.SecretKey, config.S3.Secure)
	case "sj":
		return NewStorjSourceWithCredentials(config.Storj.AccessGrant)
	}
	return nil, fmt.Errorf("unsupported deck URL scheme %q", u.Scheme)
}

// Fetch retrieves a deck using the source matching its URL.
func Fetch(ctx context.Context, deckURL string, previousETag string) (*FetchResult, error) {
	source, err := SourceFor(deckURL)
	if err != nil {
		return nil, err
	}
	if closer, ok := source.(io.Closer); ok {
		defer closer.Close()
	}
	CurrentLogger().Debugf("Fetching deck %s...", deckURL)
	return source.Fetch(ctx, deckURL, previousETag)
}

// splitBucketKey extracts the bucket and the object key from URLs like s3://bucket/path/to/key.
func splitBucketKey(deckURL string) (string, string, error) {
	u, err := url.Parse(deckURL)
	if err != nil {
		return "", "", err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("missing bucket or key in %q", deckURL)
	}
	return u.Host, key, nil
}

/* HTTP */

type HTTPSource struct {
	client    *http.Client
	userAgent string
}

func NewHTTPSource(timeout time.Duration, userAgent string) *HTTPSource {
	return &HTTPSource{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// RawURL returns the URL of the raw markdown content.
// GitHub gists are rendered as HTML unless "/raw" is appended.
func RawURL(deckURL string) string {
	u, err := url.Parse(deckURL)
	if err != nil {
		return deckURL
	}
	if u.Host == "gist.github.com" && !strings.HasSuffix(u.Path, "/raw") {
		return strings.TrimSuffix(deckURL, "/") + "/raw"
	}
	return deckURL
}

func (s *HTTPSource) Fetch(ctx context.Context, deckURL string, previousETag string) (*FetchResult, error) {
	rawURL := RawURL(deckURL)

	if previousETag != "" {
		etag, err := s.head(ctx, rawURL)
		if err != nil {
			// Some servers reject HEAD requests
			CurrentLogger().Debugf("Unable to check ETag of %s: %v", rawURL, err)
		} else if etag != "" && etag == previousETag {
			return &FetchResult{ETag: etag, NotModified: true}, nil
		}
	}

	res, err := s.do(ctx, http.MethodGet, rawURL)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	content, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", rawURL, err)
	}
	return &FetchResult{
		Content: content,
		ETag:    res.Header.Get("ETag"),
	}, nil
}

func (s *HTTPSource) head(ctx context.Context, rawURL string) (string, error) {
	res, err := s.do(ctx, http.MethodHead, rawURL)
	if err != nil {
		return "", err
	}
	res.Body.Close()
	return res.Header.Get("ETag"), nil
}

func (s *HTTPSource) do(ctx context.Context, method string, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode == http.StatusNotFound {
		res.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrDeckNotExist, rawURL)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		res.Body.Close()
		return nil, &HTTPStatusError{URL: rawURL, StatusCode: res.StatusCode}
	}
	return res, nil
}

/* FS */

// FSSource reads decks from the local file system (file:// URLs or plain paths).
type FSSource struct{}

func NewFSSource() *FSSource {
	return &FSSource{}
}

func (s *FSSource) Fetch(ctx context.Context, deckURL string, previousETag string) (*FetchResult, error) {
	path := deckURL
	if strings.HasPrefix(deckURL, "file://") {
		u, err := url.Parse(deckURL)
		if err != nil {
			return nil, err
		}
		path = u.Path
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDeckNotExist, path)
	}
	if err != nil {
		return nil, err
	}

	etag := helpers.Hash(content)
	if etag == previousETag {
		return &FetchResult{ETag: etag, NotModified: true}, nil
	}
	return &FetchResult{
		Content: content,
		ETag:    etag,
	}, nil
}

/* S3 */

type S3Source struct {
	minioClient *minio.Client
}

func NewS3SourceWithCredentials(endpoint string, accessKey, secretKey string, secure bool) (*S3Source, error) {
	if endpoint == "" {
		return nil, errors.New("missing [s3] endpoint in configuration")
	}
	// Initialize minio client object.
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}

	return &S3Source{
		minioClient: minioClient,
	}, nil
}

func (s *S3Source) Fetch(ctx context.Context, deckURL string, previousETag string) (*FetchResult, error) {
	bucketName, key, err := splitBucketKey(deckURL)
	if err != nil {
		return nil, err
	}

	stat, err := s.minioClient.StatObject(ctx, bucketName, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrDeckNotExist, deckURL)
		}
		return nil, err
	}
	if previousETag != "" && stat.ETag == previousETag {
		return &FetchResult{ETag: stat.ETag, NotModified: true}, nil
	}

	object, err := s.minioClient.GetObject(ctx, bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()
	content, err := io.ReadAll(object)
	if err != nil {
		return nil, err
	}
	return &FetchResult{
		Content: content,
		ETag:    stat.ETag,
	}, nil
}

/* Storj */

type StorjSource struct {
	project *uplink.Project
}

// NewStorjSourceFromProject instantiates a source using a project (useful for testing purposes).
func NewStorjSourceFromProject(project *uplink.Project) *StorjSource {
	return &StorjSource{
		project: project,
	}
}

// NewStorjSourceWithCredentials instantiates a source using the access grant.
func NewStorjSourceWithCredentials(accessGrant string) (*StorjSource, error) {
	if accessGrant == "" {
		return nil, errors.New("missing [storj] access_grant in configuration")
	}

	// Parse access grant, which contains necessary credentials and permissions.
	access, err := uplink.ParseAccess(accessGrant)
	if err != nil {
		return nil, fmt.Errorf("could not request access grant: %w", err)
	}

	// Open up the Project we will be working with.
	project, err := uplink.OpenProject(context.Background(), access)
	if err != nil {
		return nil, fmt.Errorf("could not open project: %w", err)
	}

	return NewStorjSourceFromProject(project), nil
}

func (s *StorjSource) Fetch(ctx context.Context, deckURL string, previousETag string) (*FetchResult, error) {
	bucketName, key, err := splitBucketKey(deckURL)
	if err != nil {
		return nil, err
	}

	object, err := s.project.StatObject(ctx, bucketName, key)
	if errors.Is(err, uplink.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrDeckNotExist, deckURL)
	}
	if err != nil {
		return nil, fmt.Errorf("could not stat object: %w", err)
	}
	// Objects are immutable: a new upload means a new creation date
	etag := object.System.Created.UTC().Format(time.RFC3339Nano)
	if etag == previousETag {
		return &FetchResult{ETag: etag, NotModified: true}, nil
	}

	download, err := s.project.DownloadObject(ctx, bucketName, key, nil)
	if err != nil {
		return nil, fmt.Errorf("could not open object: %w", err)
	}
	defer download.Close()

	// Read everything from the download stream
	content, err := io.ReadAll(download)
	if err != nil {
		return nil, fmt.Errorf("could not read data: %w", err)
	}

	return &FetchResult{
		Content: content,
		ETag:    etag,
	}, nil
}

func (s *StorjSource) Close() error {
	return s.project.Close()
}
