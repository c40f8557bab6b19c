package bot

import "errors"

var errNoProducts = errors.New("no products resolved for watchlist")
