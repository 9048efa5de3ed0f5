// Package main 启动应用程序
package main

import "github.com/modelvault/modelvault/pkg/cmd"

//	@title			ModelVault API
//	@version		1.0
//	@description	ModelVault 是一个 3D 模型文件登记服务：接收 .glb 上传、按客户与项目归档，并为查看器解析可加载的模型路径。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
