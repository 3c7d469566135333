// Package all imports every feed source for side-effect registration.
//
// Import this package from your main to ensure all sources are registered:
//
//	import _ "github.com/Aguus467/angulismotv/internal/feeds/all"
package all

import (
	_ "github.com/Aguus467/angulismotv/internal/feeds/githubfeed"
	_ "github.com/Aguus467/angulismotv/internal/feeds/la14hd"
	_ "github.com/Aguus467/angulismotv/internal/feeds/manual"
	_ "github.com/Aguus467/angulismotv/internal/feeds/scrape"
	_ "github.com/Aguus467/angulismotv/internal/feeds/streamtp"
)
