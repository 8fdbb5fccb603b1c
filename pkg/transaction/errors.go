package transaction

import "github.com/Namp88/hoosat-wallet-core/pkg/walleterrors"

var errInvalidScriptInput = walleterrors.ErrInvalidTransaction
