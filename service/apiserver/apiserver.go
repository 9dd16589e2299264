package apiserver

import (
	"sync"

	"github.com/labstack/echo"
)

// APIServer provides json rpc and web service for the relay node
type APIServer struct {
	sync.Mutex
	e      *echo.Echo
	subMap map[string]*JRPCSub
}

// NewAPIServer returns a APIServer
func NewAPIServer() *APIServer {
	s := &APIServer{
		e:      echo.New(),
		subMap: map[string]*JRPCSub{},
	}
	return s
}

// Name returns the name of the service
func (s *APIServer) Name() string {
	return "swaprelay.apiserver"
}
