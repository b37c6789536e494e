package listControllers

// Item templates for each list view. Each receives one decoded backend
// record; field names follow the catalog API's JSON.

const productCardTemplate = `<div class="product-card" data-id="{{.id}}">
  <img src="{{.imageUrl}}" alt="{{.name}}" loading="lazy">
  <h3 class="product-card__name">{{.name}}</h3>
  <p class="product-card__desc">{{.description}}</p>
  <span class="product-card__price">{{.price}}₫</span>
  <button class="btn-add-cart" data-action="add-to-cart" data-id="{{.id}}" data-name="{{.name}}" data-price="{{.price}}">Thêm vào giỏ</button>
  <button class="btn-wishlist" data-action="toggle-wishlist" data-id="{{.id}}" data-name="{{.name}}" data-price="{{.price}}">♡</button>
</div>`

const categoryRowTemplate = `<tr class="admin-row" data-id="{{.id}}">
  <td>{{.name}}</td>
  <td>{{.description}}</td>
  <td>
    <button class="btn-edit" data-action="edit" data-id="{{.id}}">Sửa</button>
    <button class="btn-delete" data-action="delete" data-id="{{.id}}">Xóa</button>
  </td>
</tr>`

const userRowTemplate = `<tr class="admin-row" data-id="{{.id}}">
  <td>{{.username}}</td>
  <td>{{.email}}</td>
  <td>{{with .role}}{{.name}}{{end}}</td>
  <td>
    <button class="btn-edit" data-action="edit" data-id="{{.id}}">Sửa</button>
    <button class="btn-delete" data-action="delete" data-id="{{.id}}">Xóa</button>
  </td>
</tr>`

const promotionRowTemplate = `<tr class="admin-row" data-id="{{.id}}">
  <td>{{.name}}</td>
  <td>{{.discountPercent}}%</td>
  <td>{{.startDate}} – {{.endDate}}</td>
  <td>{{.status}}</td>
  <td>
    <button class="btn-edit" data-action="edit" data-id="{{.id}}">Sửa</button>
    <button class="btn-delete" data-action="delete" data-id="{{.id}}">Xóa</button>
  </td>
</tr>`
