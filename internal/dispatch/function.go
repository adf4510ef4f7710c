package dispatch

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"go.uber.org/zap"
)

// HandlerFunc serves one method. A nil error renders body with status.
type HandlerFunc func(ctx context.Context, req *Request) (status int, body interface{}, err error)

type Handler interface {
	Handle(ctx context.Context, req *Request) *Response
}

var methodOrder = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

// Function maps request methods onto handler funcs and renders the response contract.
type Function struct {
	Name    string
	methods map[string]HandlerFunc
	logger  logger.ZapLogger
}

func NewFunction(name string, log logger.ZapLogger) *Function {
	return &Function{
		Name:    name,
		methods: make(map[string]HandlerFunc),
		logger:  log.With(zap.String("function", name)),
	}
}

func (f *Function) On(method string, h HandlerFunc) *Function {
	f.methods[strings.ToUpper(method)] = h
	return f
}

func (f *Function) AllowedMethods() string {
	allowed := make([]string, 0, len(methodOrder)+1)
	for _, m := range methodOrder {
		if _, ok := f.methods[m]; ok {
			allowed = append(allowed, m)
		}
	}
	allowed = append(allowed, http.MethodOptions)
	return strings.Join(allowed, ", ")
}

func (f *Function) Handle(ctx context.Context, req *Request) (resp *Response) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}
	if method == http.MethodOptions {
		return Preflight(f.AllowedMethods())
	}

	h, ok := f.methods[method]
	if !ok {
		return Error(apperror.UnsupportedMethod(method))
	}

	defer func() {
		if p := recover(); p != nil {
			f.logger.Error("handler panic", zap.String("method", method), zap.Any("panic", p))
			resp = Error(apperror.Internal(fmt.Errorf("%v", p)))
		}
	}()

	status, body, err := h(ctx, req)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			f.logger.Error("request failed", zap.String("method", method), zap.Error(err))
		} else {
			f.logger.Debug("request rejected", zap.String("method", method), zap.Error(err))
		}
		return Error(err)
	}
	return JSON(status, body)
}
