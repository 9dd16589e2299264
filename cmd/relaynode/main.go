package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/meverselabs/swaprelay/cmd/app"
	"github.com/meverselabs/swaprelay/cmd/closer"
	"github.com/meverselabs/swaprelay/cmd/config"
	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/common/bin"
	"github.com/meverselabs/swaprelay/common/key"
	"github.com/meverselabs/swaprelay/core/types"
	"github.com/meverselabs/swaprelay/service/apiserver"
	"github.com/meverselabs/swaprelay/service/swapsearch"
)

const nodeVersion = "v1.0.0"

// Config is a configuration for the cmd
type Config struct {
	NodeKeyHex  string
	BindAddress string
	StorePath   string

	TokenAName   string
	TokenASymbol string
	TokenASupply string
	TokenBName   string
	TokenBSymbol string
	TokenBSupply string

	RouterLiquidity string
	Stable          bool
	FeeTier         uint64
	RateNum         uint64
	RateDen         uint64
	FeeBps          uint64

	PairPathKind     uint8
	PairPoolSelector uint64
}

func fillDefaults(cfg *Config) {
	if len(cfg.BindAddress) == 0 {
		cfg.BindAddress = ":8541"
	}
	if len(cfg.StorePath) == 0 {
		cfg.StorePath = "./rdata"
	}
	if len(cfg.TokenAName) == 0 {
		cfg.TokenAName = "TokenA"
	}
	if len(cfg.TokenASymbol) == 0 {
		cfg.TokenASymbol = "TKA"
	}
	if len(cfg.TokenASupply) == 0 {
		cfg.TokenASupply = "1000000"
	}
	if len(cfg.TokenBName) == 0 {
		cfg.TokenBName = "TokenB"
	}
	if len(cfg.TokenBSymbol) == 0 {
		cfg.TokenBSymbol = "TKB"
	}
	if len(cfg.TokenBSupply) == 0 {
		cfg.TokenBSupply = "1000000"
	}
	if len(cfg.RouterLiquidity) == 0 {
		cfg.RouterLiquidity = "400000"
	}
	if cfg.RateNum == 0 {
		cfg.RateNum = 1
	}
	if cfg.RateDen == 0 {
		cfg.RateDen = 1
	}
}

func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.LevelKey = "level"
	zcfg.EncoderConfig.MessageKey = "msg"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zcfg.Build()
}

func main() {
	ChainID := big.NewInt(1337)
	Version := uint16(0x0001)
	var cfg Config

	_cfgPath := flag.String("cfg", "./config.toml", "config file path")
	versionInfo1 := flag.Bool("v", false, "version info")
	versionInfo2 := flag.Bool("version", false, "version info")
	flag.Parse()

	if versionInfo1 != nil && *versionInfo1 {
		fmt.Println(nodeVersion)
		return
	}
	if versionInfo2 != nil && *versionInfo2 {
		fmt.Println(nodeVersion)
		return
	}

	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	slog := logger.Sugar()

	cfgPath := "./config.toml"
	if _cfgPath != nil {
		cfgPath = *_cfgPath
	}
	if err := config.LoadFile(cfgPath, &cfg); err != nil {
		if !os.IsNotExist(err) {
			slog.Fatalw("cannot load config", "path", cfgPath, "err", err)
		}
		slog.Infow("config file not found, using defaults", "path", cfgPath)
	}
	if err := godotenv.Load(); err == nil {
		slog.Info("applied .env overrides")
	}
	if v := os.Getenv("RELAY_NODE_KEY"); len(v) > 0 {
		cfg.NodeKeyHex = v
	}
	if v := os.Getenv("RELAY_BIND_ADDRESS"); len(v) > 0 {
		cfg.BindAddress = v
	}
	fillDefaults(&cfg)

	var ndkey key.Key
	if len(cfg.NodeKeyHex) > 0 {
		if bs, err := hex.DecodeString(cfg.NodeKeyHex); err != nil {
			slog.Fatalw("invalid NodeKeyHex", "err", err)
		} else if Key, err := key.NewMemoryKeyFromBytes(ChainID, bs); err != nil {
			slog.Fatalw("invalid NodeKeyHex", "err", err)
		} else {
			ndkey = Key
		}
	} else {
		if bs, err := os.ReadFile("./ndkey.key"); err != nil {
			k, err := key.NewMemoryKey(ChainID)
			if err != nil {
				slog.Fatalw("cannot create node key", "err", err)
			}
			fs, err := os.Create("./ndkey.key")
			if err != nil {
				slog.Fatalw("cannot store node key", "err", err)
			}
			fs.Write(k.Bytes())
			fs.Close()
			ndkey = k
		} else {
			if Key, err := key.NewMemoryKeyFromBytes(ChainID, bs); err != nil {
				slog.Fatalw("invalid node key file", "err", err)
			} else {
				ndkey = Key
			}
		}
	}

	cm := closer.NewManager()
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		<-sigc
		cm.CloseAll()
	}()
	defer cm.CloseAll()

	admin := ndkey.PublicKey().Address()
	gcfg := &app.GenesisConfig{
		Admin:            admin,
		TokenAName:       cfg.TokenAName,
		TokenASymbol:     cfg.TokenASymbol,
		TokenASupply:     amount.MustParseAmount(cfg.TokenASupply),
		TokenBName:       cfg.TokenBName,
		TokenBSymbol:     cfg.TokenBSymbol,
		TokenBSupply:     amount.MustParseAmount(cfg.TokenBSupply),
		RouterLiquidity:  amount.MustParseAmount(cfg.RouterLiquidity),
		Stable:           cfg.Stable,
		FeeTier:          cfg.FeeTier,
		RateNum:          cfg.RateNum,
		RateDen:          cfg.RateDen,
		FeeBps:           cfg.FeeBps,
		PairPathKind:     cfg.PairPathKind,
		PairPoolSelector: cfg.PairPoolSelector,
	}
	ctx, res, err := app.Genesis(ChainID, Version, gcfg)
	if err != nil {
		slog.Fatalw("cannot build genesis", "err", err)
	}
	ctx = ctx.NextContext(ctx.Hash(), uint64(time.Now().UnixNano()))
	slog.Infow("genesis ready",
		"admin", admin.String(),
		"tokenA", res.TokenA.String(),
		"tokenB", res.TokenB.String(),
		"router", res.Router.String(),
		"relay", res.Relay.String(),
	)

	rpcapi := apiserver.NewAPIServer()
	ts := swapsearch.NewSwapSearch(cfg.StorePath+"/_swapsearch", rpcapi, res.Relay, res.TokenA, res.TokenB)
	cm.Add("swapsearch", ts)

	nd := &relayNode{
		ctx:  ctx,
		key:  ndkey,
		res:  res,
		slog: slog,
	}
	nd.listeners = append(nd.listeners, ts.OnTxConnected)
	if err := nd.setupApi(rpcapi); err != nil {
		slog.Fatalw("cannot register relay rpc", "err", err)
	}

	go func() {
		if err := rpcapi.Run(cfg.BindAddress); err != nil {
			slog.Errorw("api server stopped", "err", err)
			cm.CloseAll()
		}
	}()
	slog.Infow("relay node started", "bind", cfg.BindAddress)
	cm.Wait()
}

type relayNode struct {
	sync.Mutex
	ctx       *types.Context
	key       key.Key
	res       *app.GenesisResult
	slog      *zap.SugaredLogger
	listeners []func(height uint32, TXID string, tx *types.Transaction, ens []*types.Event)
}

// sendTx executes the transaction as a single block and advances the context
func (nd *relayNode) sendTx(to common.Address, method string, params ...interface{}) ([]interface{}, error) {
	nd.Lock()
	defer nd.Unlock()

	tx := &types.Transaction{
		ChainID:   nd.ctx.ChainID(),
		Timestamp: uint64(time.Now().UnixNano()),
		To:        to,
		Method:    method,
	}
	tx.Args = bin.TypeWriteAll(params...)

	height := nd.ctx.TargetHeight()
	TXID := types.TransactionID(height, 0)
	sig, err := nd.key.Sign(tx.Message())
	if err != nil {
		return nil, err
	}
	pubkey, err := common.RecoverPubkey(tx.ChainID, tx.Message(), sig)
	if err != nil {
		return nil, err
	}

	sn := nd.ctx.Snapshot()
	ens, err := types.ExecuteContractTx(nd.ctx, tx, pubkey.Address(), TXID)
	if err != nil {
		nd.ctx.Revert(sn)
		return nil, err
	}
	nd.ctx.Commit(sn)

	for _, ln := range nd.listeners {
		ln(height, TXID, tx, ens)
	}
	nd.ctx = nd.ctx.NextContext(nd.ctx.Hash(), uint64(time.Now().UnixNano()))
	nd.slog.Infow("tx executed", "height", height, "txid", TXID, "to", to.String(), "method", method)

	for _, en := range ens {
		if en.Type == types.EventTagTxMsg {
			return bin.TypeReadAll(en.Result, -1)
		}
	}
	return nil, nil
}

// readTx executes the transaction against a snapshot and reverts it
func (nd *relayNode) readTx(to common.Address, method string, params ...interface{}) ([]interface{}, error) {
	nd.Lock()
	defer nd.Unlock()

	tx := &types.Transaction{
		ChainID:   nd.ctx.ChainID(),
		Timestamp: uint64(time.Now().UnixNano()),
		To:        to,
		Method:    method,
	}
	tx.Args = bin.TypeWriteAll(params...)

	sn := nd.ctx.Snapshot()
	ens, err := types.ExecuteContractTx(nd.ctx, tx, nd.key.PublicKey().Address(), "000000000000")
	nd.ctx.Revert(sn)
	if err != nil {
		return nil, err
	}
	for _, en := range ens {
		if en.Type == types.EventTagTxMsg {
			return bin.TypeReadAll(en.Result, -1)
		}
	}
	return nil, nil
}

func (nd *relayNode) setupApi(api *apiserver.APIServer) error {
	s, err := api.JRPC("relay")
	if err != nil {
		return err
	}

	s.Set("version", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return nodeVersion, nil
	})
	s.Set("info", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		nd.Lock()
		defer nd.Unlock()
		return map[string]interface{}{
			"height": nd.ctx.TargetHeight(),
			"tokenA": nd.res.TokenA.String(),
			"tokenB": nd.res.TokenB.String(),
			"router": nd.res.Router.String(),
			"relay":  nd.res.Relay.String(),
		}, nil
	})
	s.Set("swap", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		tokenInStr, err := arg.String(0)
		if err != nil {
			return nil, err
		}
		tokenOutStr, err := arg.String(1)
		if err != nil {
			return nil, err
		}
		amountInStr, err := arg.String(2)
		if err != nil {
			return nil, err
		}
		amountOutMinStr, err := arg.String(3)
		if err != nil {
			return nil, err
		}
		recipientStr, err := arg.String(4)
		if err != nil {
			return nil, err
		}
		deadline, err := arg.Uint64(5)
		if err != nil || deadline == 0 {
			deadline = uint64(time.Now().Unix()) + 600
		}
		pathKind, err := arg.Uint8(6)
		if err != nil {
			return nil, err
		}
		poolSelector, _ := arg.Uint64(7)

		amountIn, err := amount.ParseAmount(amountInStr)
		if err != nil {
			return nil, err
		}
		amountOutMin, err := amount.ParseAmount(amountOutMinStr)
		if err != nil {
			return nil, err
		}
		is, err := nd.sendTx(nd.res.Relay, "Swap",
			common.HexToAddress(tokenInStr), common.HexToAddress(tokenOutStr),
			amountIn, amountOutMin,
			common.HexToAddress(recipientStr), deadline, pathKind, poolSelector)
		if err != nil {
			return nil, err
		}
		return swapResult(is)
	})
	s.Set("pairSwap", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		amountInStr, err := arg.String(0)
		if err != nil {
			return nil, err
		}
		amountOutMinStr, err := arg.String(1)
		if err != nil {
			return nil, err
		}
		recipientStr, err := arg.String(2)
		if err != nil {
			return nil, err
		}
		deadline, err := arg.Uint64(3)
		if err != nil || deadline == 0 {
			deadline = uint64(time.Now().Unix()) + 600
		}
		reverse := false
		if v, err := arg.String(4); err == nil && v == "reverse" {
			reverse = true
		}

		amountIn, err := amount.ParseAmount(amountInStr)
		if err != nil {
			return nil, err
		}
		amountOutMin, err := amount.ParseAmount(amountOutMinStr)
		if err != nil {
			return nil, err
		}
		method := "SwapPair"
		if reverse {
			method = "SwapPairReverse"
		}
		is, err := nd.sendTx(nd.res.Relay, method,
			amountIn, amountOutMin, common.HexToAddress(recipientStr), deadline)
		if err != nil {
			return nil, err
		}
		return swapResult(is)
	})
	s.Set("balanceOf", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		tokenStr, err := arg.String(0)
		if err != nil {
			return nil, err
		}
		ownerStr, err := arg.String(1)
		if err != nil {
			return nil, err
		}
		is, err := nd.readTx(common.HexToAddress(tokenStr), "BalanceOf", common.HexToAddress(ownerStr))
		if err != nil {
			return nil, err
		}
		if len(is) > 0 {
			if am, ok := is[0].(*amount.Amount); ok {
				return am.String(), nil
			}
		}
		return "0", nil
	})
	s.Set("recoverStuckTokens", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		tokenStr, err := arg.String(0)
		if err != nil {
			return nil, err
		}
		recipientStr, err := arg.String(1)
		if err != nil {
			return nil, err
		}
		if _, err := nd.sendTx(nd.res.Relay, "RecoverStuckTokens",
			common.HexToAddress(tokenStr), common.HexToAddress(recipientStr)); err != nil {
			return nil, err
		}
		return "recovered", nil
	})
	s.Set("router", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		is, err := nd.readTx(nd.res.Relay, "Router")
		if err != nil {
			return nil, err
		}
		if len(is) > 0 {
			if addr, ok := is[0].(common.Address); ok {
				return addr.String(), nil
			}
		}
		return nil, apiserver.ErrInvalidArgument
	})
	s.Set("pair", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		tokenInStr, err := arg.String(0)
		if err != nil {
			return nil, err
		}
		tokenOutStr, err := arg.String(1)
		if err != nil {
			return nil, err
		}
		is, err := nd.readTx(nd.res.Router, "Pair",
			common.HexToAddress(tokenInStr), common.HexToAddress(tokenOutStr))
		if err != nil {
			return nil, err
		}
		if len(is) < 5 {
			return nil, apiserver.ErrInvalidArgument
		}
		return map[string]interface{}{
			"stable":  is[0],
			"feeTier": is[1],
			"rateNum": is[2],
			"rateDen": is[3],
			"feeBps":  is[4],
		}, nil
	})

	return nil
}

func swapResult(is []interface{}) (interface{}, error) {
	if len(is) > 0 {
		if am, ok := is[0].(*amount.Amount); ok {
			return am.String(), nil
		}
	}
	return nil, apiserver.ErrInvalidArgument
}
