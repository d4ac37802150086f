// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "github.com/ocasi3d/ocasi/util/logger"

var log = logger.New("CORE", logger.Default)
