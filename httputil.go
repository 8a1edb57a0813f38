package lpfolio

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/lpfolio/date"
)

// diskCache is a RoundTripper keeping successful responses on disk for the day.
type diskCache struct {
	base http.RoundTripper
	dir  string
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	// one key per day, so that cached prices expire daily.
	key := fmt.Sprintf("%s %s %s", date.Today(), req.Method, req.URL)
	file := filepath.Join(c.dir, fmt.Sprintf("lpf-%x", sha1.Sum([]byte(key))))

	if resp, err := c.get(file, req); err == nil {
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(file, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get reads a cached response.
func (c *diskCache) get(file string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores resp in file. The response body stays readable.
func (c *diskCache) put(file string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(file, content, 0600)
}

// NewDailyClient returns an HTTP client caching responses in dir until the end
// of the day. An empty dir uses the system temporary directory.
func NewDailyClient(dir string) *http.Client {
	if dir == "" {
		dir = os.TempDir()
	}
	return &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: dir}}
}

// FetchPrices gets the JSON document at addr and extracts prices from it like ImportPrices.
func FetchPrices(client *http.Client, addr string, paths map[string]string) (prices Prices, err error) {
	resp, err := client.Get(addr)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, resp.Body.Close()) }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return ImportPrices(resp.Body, paths)
}
