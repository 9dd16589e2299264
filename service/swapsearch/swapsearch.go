package swapsearch

import (
	"fmt"

	"github.com/bluele/gcache"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/tidwall/btree"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/bin"
	"github.com/meverselabs/swaprelay/service/apiserver"
)

var TAG = "SWAPSEARCH"

func plog(str ...interface{}) {
	ss := []interface{}{TAG}
	fmt.Println(append(ss, str...)...)
}

const (
	recentLimit  = 100
	btreeDegrees = 32
)

// NewSwapSearch opens the index database and registers the "swap" rpc sub.
// pairIn and pairOut are the token pair the relay is bound to; they fill the
// token columns of SwapPair and SwapPairReverse rows whose args carry only
// amounts.
func NewSwapSearch(Path string, api *apiserver.APIServer, relay common.Address, pairIn, pairOut common.Address) *SwapSearch {
	db, err := leveldb.OpenFile(Path, nil)
	if err != nil {
		panic(err)
	}

	t := &SwapSearch{
		db:        db,
		api:       api,
		relay:     relay,
		pairIn:    pairIn,
		pairOut:   pairOut,
		recent:    btree.New(btreeDegrees, nil),
		pageCache: gcache.New(500).LRU().Build(),
	}

	if !t.isInitDB() {
		t.setHeight(0)
		t.setInitDB()
	}
	plog("height", t.Height())

	t.SetupApi()

	return t
}

// Name returns the name of the service
func (t *SwapSearch) Name() string {
	return "swaprelay.swapsearch"
}

func (t *SwapSearch) Height() uint32 {
	bs, err := t.db.Get([]byte{tagHeight}, nil)
	if err != nil {
		plog("Cannot getHeight")
		return 0
	}
	return bin.Uint32(bs)
}

func (t *SwapSearch) setHeight(h uint32) error {
	err := t.db.Put([]byte{tagHeight}, bin.Uint32Bytes(h), nil)
	if err != nil {
		fmt.Printf("%+v\n", err)
		return &ErrCannotSetHeight{err, h}
	}
	return nil
}

func (t *SwapSearch) isInitDB() bool {
	bs, err := t.db.Get([]byte{tagInitDB}, nil)
	if err != nil {
		return false
	}
	return len(bs) > 0
}

func (t *SwapSearch) setInitDB() error {
	if err := t.db.Put([]byte{tagInitDB}, []byte{1}, nil); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Close releases the index database
func (t *SwapSearch) Close() {
	if err := t.db.Close(); err != nil {
		plog("CannotCloseDB", err)
	}
}
