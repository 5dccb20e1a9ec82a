package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func HttpBuildRequest(ctx context.Context, meth string, url string, header map[string]string, data []byte) (*http.Request, error) {
	var dataReader io.Reader
	if data != nil {
		dataReader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, meth, url, dataReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	if req.Header.Get("User-Agent") == "nil" {
		req.Header.Del("User-Agent")
	}
	return req, err
}

func HttpDoRequest(client *http.Client, req *http.Request) (*http.Response, error) {
	res, err := client.Do(req)
	if err != nil || res == nil {
		return res, fmt.Errorf("HttpDo error %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, fmt.Errorf("HttpDo status error %d", res.StatusCode)
	}
	return res, nil
}

func HttpDo(ctx context.Context, client *http.Client, meth string, url string, header map[string]string, data []byte) ([]byte, error) {
	if client == nil {
		client = &http.Client{}
	}
	req, err := HttpBuildRequest(ctx, meth, url, header, data)
	if err != nil {
		return nil, err
	}
	res, err := HttpDoRequest(client, req)
	if res != nil {
		defer res.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return ioutil.ReadAll(res.Body)
}

func HttpPost(ctx context.Context, client *http.Client, url string, header map[string]string, data []byte) ([]byte, error) {
	return HttpDo(ctx, client, "POST", url, header, data)
}
