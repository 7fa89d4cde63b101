package router

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/clanbase/backend/pkg/errorx"
	"github.com/clanbase/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	befores := append([]MiddlewareFunc{}, r.befores...)
	afters := append([]CloserFunc{}, r.afters...)
	closers := append([]CloserFunc{}, r.closers...)

	return func(w http.ResponseWriter, req *http.Request) {
		ctx := r.newRequestContext(req, w)

		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		if req.Method != method {
			ctx = xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Not supported method %s", req.Method))
			writeResponse(ctx, w)
			return
		}

		var abort error
		for _, m := range befores {
			newCtx, err := m(ctx)
			if err != nil {
				abort = err
				break
			}
			ctx = newCtx
		}

		if abort == nil {
			var request Request
			if err := decodeRequest(req, method, &request); err != nil {
				abort = errorx.New(errorx.BadRequest, "Cannot decode the request")
			} else if resp, err := handler(ctx, &request); err != nil {
				abort = err
			} else {
				ctx = xcontext.WithResponse(ctx, resp)
			}
		}

		if abort != nil {
			ctx = xcontext.WithError(ctx, abort)
		}

		for _, after := range afters {
			after(ctx)
		}

		writeResponse(ctx, w)
	}
}

// decodeRequest binds query parameters on GET and the JSON body on POST. Only
// string, integer, and boolean query fields are supported, which covers every
// request model of this API.
func decodeRequest(req *http.Request, method string, target any) error {
	if method == http.MethodPost {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return err
		}

		if len(body) == 0 {
			return nil
		}

		return json.Unmarshal(body, target)
	}

	v := reflect.ValueOf(target).Elem()
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Tag.Get("json")
		if name == "" {
			continue
		}

		queryVal := req.URL.Query().Get(name)
		if queryVal == "" {
			continue
		}

		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(queryVal)
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(queryVal, 10, 64)
			if err != nil {
				return err
			}
			v.Field(i).SetInt(n)
		case reflect.Uint64:
			n, err := strconv.ParseUint(queryVal, 10, 64)
			if err != nil {
				return err
			}
			v.Field(i).SetUint(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(queryVal)
			if err != nil {
				return err
			}
			v.Field(i).SetBool(b)
		}
	}

	return nil
}
