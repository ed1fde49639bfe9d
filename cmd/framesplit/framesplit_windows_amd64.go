//go:build windows && amd64

//go:generate goversioninfo -64=true -o=./winresources/resource.syso -manifest=internal/assets/framesplit.exe.manifest ./winresources/versioninfo.json

package main

import _ "framesplit/cmd/framesplit/winresources"
